package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/crzwdjk/pbquery"
)

type evalFlags struct {
	descriptorSet string
	rootType      string
	input         string
	first         bool
	maxDepth      int
}

func (f *evalFlags) bind(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&f.descriptorSet, "descriptor-set", "", "path to a binary FileDescriptorSet")
	flagSet.StringVar(&f.rootType, "root-type", "", "fully-qualified name of the message the query starts at")
	flagSet.StringVar(&f.input, "input", "", "path to a file containing the encoded record (defaults to stdin)")
	flagSet.BoolVar(&f.first, "first", false, "stop at the first match, like Plan.EvaluateFirst")
	flagSet.IntVar(&f.maxDepth, "max-depth", pbquery.DefaultMaxDepth, "recursion depth bound passed to MaxDepth")
}

func newEvalCommand() *cobra.Command {
	flags := &evalFlags{}
	cmd := &cobra.Command{
		Use:   "eval <query>",
		Short: "Evaluate a query against an encoded record and print the matches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, flags, args[0])
		},
	}
	flags.bind(cmd.Flags())
	_ = cmd.MarkFlagRequired("root-type")
	return cmd
}

func runEval(cmd *cobra.Command, flags *evalFlags, query string) error {
	logger, sync, cfg, err := setUp(cmd)
	if err != nil {
		return err
	}
	defer sync()

	descriptorSetPath := flags.descriptorSet
	if descriptorSetPath == "" {
		descriptorSetPath = cfg.DescriptorSet
	}
	rootType := cfg.resolveTypeName(flags.rootType)

	buf, err := readInput(flags.input)
	if err != nil {
		return err
	}

	logger.Debug("evaluating query",
		zap.String("root_type", rootType),
		zap.Int("input_bytes", len(buf)),
		zap.Bool("first_only", flags.first),
	)

	reg, err := loadRegistry(descriptorSetPath)
	if err != nil {
		return err
	}

	root, err := pbquery.ResolveRoot(reg, rootType)
	if err != nil {
		return err
	}

	plan, err := pbquery.Compile(root, query)
	if err != nil {
		return err
	}

	opts := []pbquery.EvalOption{pbquery.MaxDepth(flags.maxDepth)}

	var matches []pbquery.Slice
	if flags.first {
		match, ok, err := plan.EvaluateFirst(buf, opts...)
		if err != nil {
			return err
		}
		if ok {
			matches = append(matches, match)
		}
	} else {
		result, err := plan.EvaluateAll(buf, opts...)
		if err != nil {
			return err
		}
		matches = result.Matches
	}

	logger.Debug("evaluation complete", zap.Int("matches", len(matches)))

	out := cmd.OutOrStdout()
	human := term.IsTerminal(int(os.Stdout.Fd()))
	for i, m := range matches {
		if human {
			fmt.Fprintf(out, "match %d (%d bytes):\n%s\n", i, len(m), hex.Dump(m))
		} else {
			fmt.Fprintf(out, "%s\n", hex.EncodeToString(m))
		}
	}
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
