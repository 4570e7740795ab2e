package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/barbell/pkg/pipeline"
	"github.com/matzehuels/barbell/pkg/render/barbell/styles"
)

func TestFormatCompletion(t *testing.T) {
	tests := []struct {
		name       string
		valid      map[string]bool
		toComplete string
		want       []string
	}{
		{"all render formats", pipeline.ValidFormats, "", []string{"json", "pdf", "png", "svg"}},
		{"prefix", pipeline.ValidFormats, "p", []string{"pdf", "png"}},
		{"after comma skips listed", pipeline.ValidFormats, "svg,p", []string{"svg,pdf", "svg,png"}},
		{"all listed", pipeline.ValidFormats, "svg,png,pdf,json,", nil},
		{"trace formats", pipeline.ValidTraceFormats, "d", []string{"dot"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, directive := formatCompletion(tt.valid)(nil, nil, tt.toComplete)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("completions mismatch (-want +got):\n%s", diff)
			}
			if directive&cobra.ShellCompDirectiveNoSpace == 0 {
				t.Error("format completion should not add a trailing space")
			}
		})
	}
}

func TestRegisteredFlagCompletions(t *testing.T) {
	root := testCLI().RootCommand()

	render, _, err := root.Find([]string{"render"})
	if err != nil {
		t.Fatal(err)
	}
	fn, ok := render.GetFlagCompletionFunc("style")
	if !ok {
		t.Fatal("render --style has no completion")
	}
	got, _ := fn(render, nil, "")
	if diff := cmp.Diff(styles.Names(), got); diff != "" {
		t.Errorf("style completions mismatch (-want +got):\n%s", diff)
	}

	trace, _, err := root.Find([]string{"trace"})
	if err != nil {
		t.Fatal(err)
	}
	fn, ok = trace.GetFlagCompletionFunc("format")
	if !ok {
		t.Fatal("trace --format has no completion")
	}
	if got, _ := fn(trace, nil, "do"); !cmp.Equal(got, []string{"dot"}) {
		t.Errorf("trace format completions = %v, want [dot]", got)
	}
}

func TestCompleteInventoryFiles(t *testing.T) {
	exts, directive := completeInventoryFiles(nil, nil, "")
	if directive != cobra.ShellCompDirectiveFilterFileExt {
		t.Errorf("directive = %v, want FilterFileExt", directive)
	}
	if !cmp.Equal(exts, []string{"json", "toml", "yaml", "yml"}) {
		t.Errorf("extensions = %v", exts)
	}
	if got, directive := completeInventoryFiles(nil, []string{"plates.toml"}, ""); got != nil || directive != cobra.ShellCompDirectiveNoFileComp {
		t.Error("a second file argument should not be completed")
	}
}

func TestCompletionCommand(t *testing.T) {
	isolate(t)

	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			root := testCLI().RootCommand()
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetArgs([]string{"completion", shell})
			if err := root.Execute(); err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
			if !strings.Contains(out.String(), "barbell") {
				t.Errorf("%s script does not mention barbell", shell)
			}
		})
	}
}
