package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/crzwdjk/pbquery"
	"github.com/crzwdjk/pbquery/internal/protoschema"
)

// resolveFlags holds the flags bound by the resolve subcommand, grouped
// the way the teacher's pack sibling (bufbuild/buf) binds per-command
// flags onto a dedicated struct rather than scattering package-level
// vars.
type resolveFlags struct {
	descriptorSet string
}

func (f *resolveFlags) bind(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&f.descriptorSet, "descriptor-set", "", "path to a binary FileDescriptorSet")
}

func newResolveCommand() *cobra.Command {
	flags := &resolveFlags{}
	cmd := &cobra.Command{
		Use:   "resolve <type-name>",
		Short: "Resolve a fully-qualified message type and list its fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, flags, args[0])
		},
	}
	flags.bind(cmd.Flags())
	return cmd
}

func runResolve(cmd *cobra.Command, flags *resolveFlags, typeName string) error {
	logger, sync, cfg, err := setUp(cmd)
	if err != nil {
		return err
	}
	defer sync()

	descriptorSetPath := flags.descriptorSet
	if descriptorSetPath == "" {
		descriptorSetPath = cfg.DescriptorSet
	}
	typeName = cfg.resolveTypeName(typeName)

	logger.Debug("resolving root type", zap.String("type", typeName), zap.String("descriptor_set", descriptorSetPath))

	reg, err := loadRegistry(descriptorSetPath)
	if err != nil {
		return err
	}

	desc, err := pbquery.ResolveRoot(reg, typeName)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", desc.FullName())

	// desc is backed by internal/protoschema, the only registry this CLI
	// builds; unwrap it to list every field (the narrow
	// pbquery.MessageDescriptor contract only supports look-up by name).
	protoDesc, ok := desc.(protoschema.Descriptor)
	if !ok {
		return nil
	}
	fields := protoDesc.Unwrap().Fields()
	for i := 0; i < fields.Len(); i++ {
		fd := fields.Get(i)
		field, _ := desc.FieldByName(string(fd.Name()))
		fmt.Fprintf(cmd.OutOrStdout(), "  %-20s tag=%-4d kind=%s\n", field.Name(), field.Tag(), field.Kind())
	}
	return nil
}
