package main

import (
	"log/slog"
	"os"

	"github.com/Xin-10/Netflix-Data-Visualization/internal/app"
	"github.com/Xin-10/Netflix-Data-Visualization/internal/infrastructure"
)

func main() {
	application, err := app.NewApplication()
	if err != nil {
		slog.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		application.Logger.Error("Application error", slog.String("error", err.Error()))
		infrastructure.CloseLogFile()
		os.Exit(1)
	}
	infrastructure.CloseLogFile()
}
