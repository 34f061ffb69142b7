package codegen

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"

	"github.com/KromDaniel/regdfa/internal/recognizer"
)

// CBackend emits a standalone C program. Symbols must be ASCII since the
// program compares input bytes.
type CBackend struct{}

// Name implements Backend.
func (CBackend) Name() string { return "c" }

// FileExtension implements Backend.
func (CBackend) FileExtension() string { return ".c" }

var cProgram = template.Must(template.New("c").Parse(`/* Code generated by regdfa. DO NOT EDIT. */
/* Pattern: {{.Pattern}} */
#include <stdio.h>

#define MAX_TOKEN_LEN {{.MaxTokenLen}}

int main(void) {
	static char s[MAX_TOKEN_LEN + 1];
	if (scanf("%{{.MaxTokenLen}}s", s) != 1) {
		s[0] = '\0';
	}
	if (getchar() > ' ') {
		printf("{{.Reject}}\n");
		return 0;
	}
	int state = {{.Start}};
	for (int i = 0; s[i] != '\0'; ++i) {
		char c = s[i];
		switch (state) {
{{- range .States}}
		case {{.ID}}:
{{- range .Branches}}
			if (c == {{.Symbol}}) { state = {{.Target}}; break; }
{{- end}}
			goto error;
{{- end}}
		default:
		error:
			printf("{{.Reject}}\n");
			return 0;
		}
	}
	if ({{.Accept}})
		printf("{{.AcceptVerdict}}\n");
	else
		printf("{{.Reject}}\n");
	return 0;
}
`))

type cBranch struct {
	Symbol int
	Target int
}

type cState struct {
	ID       int
	Branches []cBranch
}

type cData struct {
	Pattern       string
	MaxTokenLen   int
	Start         int
	States        []cState
	Accept        string
	AcceptVerdict string
	Reject        string
}

// Generate implements Backend.
func (CBackend) Generate(w io.Writer, table *recognizer.Table[rune], meta Meta) error {
	data := cData{
		Pattern:       strings.ReplaceAll(strconv.QuoteToASCII(meta.Pattern), "*/", `*\/`),
		MaxTokenLen:   MaxTokenLen,
		Start:         table.Start(),
		Accept:        "0",
		AcceptVerdict: AcceptVerdict,
		Reject:        RejectVerdict,
	}

	sources, groups := table.Branches()
	for _, src := range sources {
		st := cState{ID: src}
		for _, b := range groups[src] {
			if b.Symbol < 0 || b.Symbol > 0x7f {
				return fmt.Errorf("c backend: symbol %q is not ASCII", b.Symbol)
			}
			st.Branches = append(st.Branches, cBranch{Symbol: int(b.Symbol), Target: b.Target})
		}
		data.States = append(data.States, st)
	}

	if accept := table.Accept(); len(accept) > 0 {
		terms := make([]string, len(accept))
		for i, id := range accept {
			terms[i] = fmt.Sprintf("state == %d", id)
		}
		data.Accept = strings.Join(terms, " || ")
	}

	if err := cProgram.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render C program: %w", err)
	}
	return nil
}
