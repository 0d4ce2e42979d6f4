package main

import (
	stdlog "log"
	"os"

	"git.lost.host/meutraa/divads/internal/config"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

func main() {
	if err := config.Parse(os.Args[1:]); nil != err {
		stdlog.Fatalln(err)
	}

	// The terminal belongs to the game, so logs only ever go to a file
	if *config.LogPath == "" {
		commonlog.Configure(-4, nil)
	} else {
		commonlog.Configure(*config.Verbosity, config.LogPath)
	}

	if err := run(); nil != err {
		stdlog.Fatalln(err)
	}
}

func run() error {
	p := &Program{}
	defer p.Deinit()
	if err := p.Init(); nil != err {
		return err
	}
	return p.Run()
}
