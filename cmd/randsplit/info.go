package main

import (
	"fmt"
	"strings"

	"github.com/lox/splitrand/internal/backend"
)

type InfoCmd struct{}

func (c *InfoCmd) Run(g *Globals) error {
	fmt.Printf("randsplit %s\n", version)
	fmt.Printf("backends:    %s\n", strings.Join(backend.Backends, ", "))
	fmt.Printf("sequentials: %s\n", strings.Join(backend.Sequentials, ", "))
	return nil
}
