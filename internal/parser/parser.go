package parser

import "git.lost.host/meutraa/divads/internal/game"

type Parser interface {
	Parse(file string) (*game.Chart, error)
	// Scan lists the chart files under dir, sorted by name
	Scan(dir string) ([]string, error)
}
