package main

import (
	"context"
	"fmt"
	"io"
	"os"
)

// runTransform applies a template to JSON data.
func runTransform(_ context.Context, args []string, env *Environment) error {
	flags, positional, err := parseTransformFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	if flags.name == "" && len(positional) != 1 {
		return fmt.Errorf("%w: expected a template file or --name", ErrUsage)
	}
	if flags.name != "" && len(positional) != 0 {
		return fmt.Errorf("%w: --name and a template file are exclusive", ErrUsage)
	}

	s, err := newSession(&flags.common, env)
	if err != nil {
		return err
	}
	defer s.close()

	data, err := readData(flags.data, env.Stdin)
	if err != nil {
		return err
	}

	var out string
	if flags.name != "" {
		out, err = s.cat.Transform(flags.name, data)
	} else {
		source, readErr := os.ReadFile(positional[0]) // #nosec G304 -- user-provided path
		if readErr != nil {
			return fmt.Errorf("%w: %v", ErrReadInput, readErr)
		}
		out, err = s.cat.CompileAndTransform(string(source), data)
	}
	if err != nil {
		return err
	}
	return writeOutput(flags.output, []byte(out), env.Stdout)
}

// readData reads the JSON data from path, or from stdin for "" and "-".
func readData(path string, stdin io.Reader) (string, error) {
	var (
		b   []byte
		err error
	)
	if path == "" || path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path) // #nosec G304 -- user-provided path
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	return string(b), nil
}
