package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/bones/pkg/htmlsanitizer"
)

func newSanitizeCmd(a *app) *cobra.Command {
	var (
		policyFile string
		strip      bool
		tags       bool
	)

	cmd := &cobra.Command{
		Use:   "sanitize",
		Short: "Sanitize HTML read from stdin",
		Long: `Reads markup from stdin and writes it reduced to the tags, attributes,
styles and classes of the sanitizer policy. The policy is the built-in
default unless --policy or BONES_SANITIZER_POLICY names a YAML file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			out := cmd.OutOrStdout()

			if tags {
				for _, tag := range htmlsanitizer.SearchTags(string(input), a.framework.SearchValidChars) {
					fmt.Fprintln(out, tag)
				}
				return nil
			}

			policy, err := a.policy(policyFile, strip)
			if err != nil {
				return err
			}
			s := htmlsanitizer.New(policy, htmlsanitizer.WithLogger(a.log))
			_, err = io.WriteString(out, s.Sanitize(strings.TrimSuffix(string(input), "\n"))+"\n")
			return err
		},
	}

	cmd.Flags().StringVar(&policyFile, "policy", "", "YAML policy file")
	cmd.Flags().BoolVar(&strip, "strip", false, "remove all markup")
	cmd.Flags().BoolVar(&tags, "tags", false, "print the search tags instead of the sanitized markup")
	cmd.MarkFlagsMutuallyExclusive("policy", "strip")
	return cmd
}

// policy resolves the sanitizer policy. A nil policy strips all tags.
func (a *app) policy(file string, strip bool) (*htmlsanitizer.Policy, error) {
	if strip {
		return nil, nil
	}
	if file == "" {
		file = a.framework.SanitizerPolicy
	}
	if file == "" {
		return htmlsanitizer.DefaultPolicy(), nil
	}
	a.log.Debug("loading sanitizer policy", "file", file)
	return htmlsanitizer.LoadPolicyFile(file)
}
