package parse

import (
	"bytes"
	"fmt"
	"reflect"
)

// PprintAST renders a node as an indented field tree, for the CLI's -dump
// flag.
func PprintAST(n Node) string {
	var b bytes.Buffer
	pprintAST(&b, "", n)
	return b.String()
}

var nodeTyp = reflect.TypeOf((*Node)(nil)).Elem()

func pprintAST(buf *bytes.Buffer, indent string, n Node) {
	if n == nil || (reflect.ValueOf(n).Kind() == reflect.Ptr && reflect.ValueOf(n).IsNil()) {
		buf.WriteString("nil")
		return
	}

	indent1 := indent + "  "
	indent2 := indent1 + "  "
	nVal := reflect.ValueOf(n).Elem()
	nTyp := nVal.Type()

	buf.WriteString(nTyp.Name() + "{")

	writtenField := false
	for i := 0; i < nVal.NumField(); i++ {
		if nTyp.Field(i).PkgPath != "" {
			continue
		}
		buf.WriteString("\n" + indent1 + nTyp.Field(i).Name + ": ")
		writtenField = true

		fieldTyp := nTyp.Field(i).Type
		fieldVal := nVal.Field(i)
		field := fieldVal.Interface()

		switch field := field.(type) {
		case Node:
			pprintAST(buf, indent1, field)
		case string:
			fmt.Fprintf(buf, "%q", field)
		case fmt.Stringer:
			fmt.Fprint(buf, field)
		default:
			switch {
			case fieldTyp.Kind() == reflect.Slice && fieldTyp.Elem().AssignableTo(nodeTyp):
				buf.WriteRune('[')
				for j := 0; j < fieldVal.Len(); j++ {
					buf.WriteString("\n" + indent2)
					pprintAST(buf, indent2, fieldVal.Index(j).Interface().(Node))
				}
				if fieldVal.Len() > 0 {
					buf.WriteString("\n" + indent1)
				}
				buf.WriteRune(']')
			case fieldTyp == reflect.TypeOf(Assignment{}):
				a := field.(Assignment)
				fmt.Fprintf(buf, "%s=", a.Name)
				pprintAST(buf, indent1, a.Value)
			case fieldTyp == reflect.TypeOf([]Assignment{}):
				buf.WriteRune('[')
				as := field.([]Assignment)
				for _, a := range as {
					buf.WriteString("\n" + indent2 + a.Name + "=")
					pprintAST(buf, indent2, a.Value)
				}
				if len(as) > 0 {
					buf.WriteString("\n" + indent1)
				}
				buf.WriteRune(']')
			case fieldTyp == reflect.TypeOf([]Redirect{}):
				buf.WriteRune('[')
				rs := field.([]Redirect)
				for _, r := range rs {
					buf.WriteString("\n" + indent2)
					fmt.Fprintf(buf, "%d%s ", r.Fd, r.Op)
					if r.TargetFd >= 0 {
						fmt.Fprintf(buf, "&%d", r.TargetFd)
					} else {
						pprintAST(buf, indent2, r.Target)
					}
				}
				if len(rs) > 0 {
					buf.WriteString("\n" + indent1)
				}
				buf.WriteRune(']')
			default:
				fmt.Fprint(buf, field)
			}
		}
	}
	if writtenField {
		buf.WriteString("\n" + indent)
	}
	buf.WriteRune('}')
}
