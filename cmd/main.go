package main

import (
	"github.com/quickjuice/backend/internal/app"
	"github.com/quickjuice/backend/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
