// Package sanitize limpia el HTML enriquecido de las publicaciones.
//
// Es un sanitizador estructural, no un escapado: el fragmento se parsea a un
// árbol (golang.org/x/net/html) y se recorre con una lista blanca de
// elementos en línea. Los elementos script/style/iframe se eliminan con todo
// su contenido; cualquier otro elemento no permitido se desenvuelve dejando
// sus hijos en su lugar.
package sanitize

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var allowed = map[atom.Atom]bool{
	atom.B:      true,
	atom.I:      true,
	atom.U:      true,
	atom.Strong: true,
	atom.Em:     true,
	atom.Br:     true,
}

// Elementos cuyo contenido no debe sobrevivir ni como texto.
var dropped = map[atom.Atom]bool{
	atom.Script: true,
	atom.Style:  true,
	atom.Iframe: true,
}

// HTML sanitiza un fragmento. Devuelve cadena vacía para entrada vacía.
func HTML(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	nodes, err := parseFragment(fragment)
	if err != nil {
		// Entrada imposible de parsear: mejor descartar que dejar pasar.
		return ""
	}
	// Raíz sintética para que los nodos de nivel superior pasen por el mismo
	// filtro que los anidados.
	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	cleanNode(root)

	var b strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&b, c)
	}
	return strings.TrimSpace(b.String())
}

// PlainText proyecta HTML ya sanitizado a texto plano: los nodos de texto se
// concatenan y cada <br> aporta un salto de línea. Se usa para búsqueda,
// exportación CSV y la vista sin formato.
func PlainText(fragment string) string {
	if fragment == "" {
		return ""
	}
	nodes, err := parseFragment(fragment)
	if err != nil {
		return ""
	}
	var b strings.Builder
	for _, n := range nodes {
		collectText(n, &b)
	}
	return b.String()
}

func parseFragment(fragment string) ([]*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	return html.ParseFragment(strings.NewReader(fragment), ctx)
}

// cleanNode aplica la lista blanca al subárbol de n (n mismo se filtra en el
// llamador para los nodos de nivel superior).
func cleanNode(n *html.Node) {
	c := n.FirstChild
	for c != nil {
		next := c.NextSibling
		if c.Type == html.ElementNode {
			switch {
			case dropped[c.DataAtom]:
				n.RemoveChild(c)
			case allowed[c.DataAtom]:
				c.Attr = nil
				cleanNode(c)
			default:
				// Desenvolver: subir los hijos al lugar del elemento y
				// continuar el recorrido desde el primero de ellos.
				var first *html.Node
				for c.FirstChild != nil {
					gc := c.FirstChild
					c.RemoveChild(gc)
					n.InsertBefore(gc, c)
					if first == nil {
						first = gc
					}
				}
				n.RemoveChild(c)
				if first != nil {
					next = first
				}
			}
		}
		c = next
	}
}

func collectText(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
	case html.ElementNode:
		if n.DataAtom == atom.Br {
			b.WriteString("\n")
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}
