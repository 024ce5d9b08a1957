package ir3

import (
	"encoding/json"
	"io"
	"strings"
)

type jsonVar struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type jsonData struct {
	Class string    `json:"class"`
	Vars  []jsonVar `json:"vars"`
}

type jsonStmt struct {
	Kind  string `json:"kind"`
	Label *int   `json:"label,omitempty"`
	Text  string `json:"text"`
}

type jsonMethod struct {
	Name       string     `json:"name"`
	Class      string     `json:"class"`
	ReturnType string     `json:"return_type"`
	Params     []jsonVar  `json:"params"`
	Vars       []jsonVar  `json:"vars"`
	Stmts      []jsonStmt `json:"stmts"`
}

type jsonProgram struct {
	Datas   []jsonData   `json:"datas"`
	Methods []jsonMethod `json:"methods"`
}

// WriteJSON dumps the structure of p as indented JSON.
func WriteJSON(w io.Writer, p *Program) error {
	out := jsonProgram{
		Datas:   make([]jsonData, 0, len(p.Datas)),
		Methods: make([]jsonMethod, 0, len(p.Methods)),
	}
	for i := range p.Datas {
		out.Datas = append(out.Datas, jsonData{Class: p.Datas[i].Class, Vars: jsonVars(p.Datas[i].Vars)})
	}
	for _, m := range p.Methods {
		jm := jsonMethod{
			Name:       m.Name,
			Class:      m.Class,
			ReturnType: m.ReturnType.String(),
			Params:     jsonVars(m.Params),
			Vars:       jsonVars(m.Vars),
			Stmts:      make([]jsonStmt, 0, len(m.Stmts)),
		}
		for i := range m.Stmts {
			st := &m.Stmts[i]
			js := jsonStmt{Kind: st.Kind.String(), Text: strings.TrimSpace(FormatStmt(st))}
			if st.Kind == StmtLabel {
				l := st.Label.Label
				js.Label = &l
			} else if target, ok := st.Target(); ok {
				js.Label = &target
			}
			jm.Stmts = append(jm.Stmts, js)
		}
		out.Methods = append(out.Methods, jm)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func jsonVars(vars []Var) []jsonVar {
	out := make([]jsonVar, 0, len(vars))
	for _, v := range vars {
		out = append(out, jsonVar{Type: v.Type.String(), ID: v.ID})
	}
	return out
}
