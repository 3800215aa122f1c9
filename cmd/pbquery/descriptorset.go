package main

import (
	"fmt"
	"os"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/crzwdjk/pbquery/internal/protoschema"
)

// loadRegistry reads a binary FileDescriptorSet (as produced by
// `buf build -o` or `protoc -o`) from path and adapts it into a
// pbquery schema registry.
func loadRegistry(path string) (*protoschema.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading descriptor set: %w", err)
	}

	var set descriptorpb.FileDescriptorSet
	if err := proto.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parsing descriptor set: %w", err)
	}

	files, err := protodesc.NewFiles(&set)
	if err != nil {
		return nil, fmt.Errorf("building file registry: %w", err)
	}

	return protoschema.NewRegistry(files), nil
}
