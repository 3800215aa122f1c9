package main

import (
	"fmt"

	"al.essio.dev/pkg/shellescape"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/crzwdjk/pbquery"
)

type compileFlags struct {
	descriptorSet string
	rootType      string
}

func (f *compileFlags) bind(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&f.descriptorSet, "descriptor-set", "", "path to a binary FileDescriptorSet")
	flagSet.StringVar(&f.rootType, "root-type", "", "fully-qualified name of the message the query starts at")
}

func newCompileCommand() *cobra.Command {
	flags := &compileFlags{}
	cmd := &cobra.Command{
		Use:   "compile <query>",
		Short: "Compile a query against a schema and print the resulting plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, flags, args[0])
		},
	}
	flags.bind(cmd.Flags())
	_ = cmd.MarkFlagRequired("root-type")
	return cmd
}

func runCompile(cmd *cobra.Command, flags *compileFlags, query string) error {
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

	// Quoted so the query is safe to copy straight back into a shell,
	// even if it contains characters like '[' or '\''.
	logger.Debug("compiling query", zap.String("root_type", rootType), zap.String("query", shellescape.Quote(query)))

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

	for i, step := range plan.Steps {
		fmt.Fprintf(cmd.OutOrStdout(), "step %d: tag=%d filter=%s\n", i, step.Tag, step.Filter.Kind)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "plan size: %d node(s) (including filter-nested paths)\n", plan.NumNestedPlans())
	return nil
}
