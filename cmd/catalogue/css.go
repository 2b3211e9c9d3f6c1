package main

import (
	"context"
	"fmt"
)

// runCSS writes the catalogue stylesheet with the highlighting rules.
func runCSS(_ context.Context, args []string, env *Environment) error {
	flags, positional, err := parseCSSFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	if len(positional) != 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, positional[0])
	}

	s, err := newSession(&flags.common, env)
	if err != nil {
		return err
	}
	defer s.close()

	css, err := s.cat.Stylesheet()
	if err != nil {
		return err
	}
	return writeOutput(flags.output, []byte(css), env.Stdout)
}
