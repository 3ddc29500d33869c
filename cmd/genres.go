package cmd

import (
	"fmt"

	"github.com/lepinkainen/cinerelay/internal/config"
)

// GenresCmd represents the genres command
type GenresCmd struct{}

func (g *GenresCmd) Run(cfg config.Config) error {
	provider, _, err := newProvider(cfg)
	if err != nil {
		return err
	}
	for _, name := range provider.Genres().Names() {
		_, _ = fmt.Fprintln(output, name)
	}
	return nil
}
