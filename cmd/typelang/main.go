// Command typelang is the REPL/batch front-end for TypeLang HM (§6).
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/sin4auto/typelang-hm/eval"
	"github.com/sin4auto/typelang-hm/typelang"
	"github.com/sin4auto/typelang-hm/types"
	"github.com/spf13/cobra"
)

func main() {
	var load string

	rootCmd := &cobra.Command{
		Use:   "typelang [file.tl]",
		Short: "TypeLang HM interpreter",
		Long: `TypeLang HM is a small strict, purely-functional language with
Hindley-Milner let-polymorphism and a closed set of type classes.

Run with no arguments to start an interactive session; pass a .tl file to
load it and exit; add --load alongside a bare session to preload a file
before dropping into the REPL.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := typelang.NewSession()
			if load != "" {
				if err := sess.LoadFile(load); err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(2)
				}
			}
			if len(args) == 1 {
				if err := sess.LoadFile(args[0]); err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(2)
				}
				return nil
			}
			runREPL(sess)
			return nil
		},
	}
	rootCmd.Flags().StringVarP(&load, "load", "l", "", "preload a .tl file before starting the REPL")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// runREPL drives the interactive command loop of the CLI contract table
// (SPEC_FULL.md §6): one command per line, read from stdin until :quit/:q
// or EOF.
func runREPL(sess *typelang.Session) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Print("> ")
			continue
		}
		if quit := dispatch(sess, line); quit {
			return
		}
		fmt.Print("> ")
	}
}

// dispatch handles one REPL line, returning true if the session should
// exit (:quit/:q).
func dispatch(sess *typelang.Session, line string) (quit bool) {
	switch {
	case line == ":quit" || line == ":q":
		return true
	case strings.HasPrefix(line, ":type ") || strings.HasPrefix(line, ":t "):
		cmdType(sess, afterFirstSpace(line))
	case strings.HasPrefix(line, ":let "):
		cmdLet(sess, afterFirstSpace(line))
	case strings.HasPrefix(line, ":load ") || strings.HasPrefix(line, ":l "):
		cmdLoad(sess, strings.TrimSpace(afterFirstSpace(line)))
	case line == ":reload":
		if err := sess.Reload(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	case strings.HasPrefix(line, ":list") || strings.HasPrefix(line, ":ls"):
		cmdList(sess, strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(line, ":list"), ":ls")))
	case strings.HasPrefix(line, ":remove ") || strings.HasPrefix(line, ":rm "):
		sess.Remove(strings.TrimSpace(afterFirstSpace(line)))
	case line == ":defaulting":
		sess.Defaulting = !sess.Defaulting
		fmt.Printf("defaulting: %v\n", sess.Defaulting)
	default:
		cmdEval(sess, line)
	}
	return false
}

func afterFirstSpace(s string) string {
	i := strings.IndexByte(s, ' ')
	if i < 0 {
		return ""
	}
	return s[i+1:]
}

func cmdType(sess *typelang.Session, src string) {
	e, err := typelang.ParseExpr(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	q, err := sess.InferExpr(e)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	// :type never binds a name, so it displays the bare qualified type
	// rather than a generalized scheme.
	fmt.Println(sess.ShowScheme(&types.Scheme{Qual: q}))
}

func cmdLet(sess *typelang.Session, src string) {
	m, err := typelang.ParseModule(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	if err := sess.LoadModule(m); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

func cmdLoad(sess *typelang.Session, path string) {
	if err := sess.LoadFile(path); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

func cmdList(sess *typelang.Session, prefix string) {
	for _, name := range sess.Names {
		if prefix != "" && !strings.HasPrefix(name, prefix) {
			continue
		}
		fmt.Println(name)
	}
}

func cmdEval(sess *typelang.Session, src string) {
	e, err := typelang.ParseExpr(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	if _, err := sess.InferExpr(e); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	v, err := sess.EvalExpr(e)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	s, err := eval.Show(v)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Println(s)
}
