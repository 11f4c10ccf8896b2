package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
)

// scenarios and content packs are both packaged as .valkyrie files.
var PACKAGE_EXT = ".valkyrie"

// maps the game-type selector to its output directory.
func output_dir(game_type string) string {
	if game_type == "D2E" {
		return "D2E"
	}
	return "MoM"
}

// --- bootstrap

func init() {
	if is_testing() {
		return
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelInfo})))
}

func main() {
	catalogue_path := pflag.String("catalogue", "manifest.ini", "path to the scenario catalogue")
	pack_catalogue_path := pflag.String("content-pack-catalogue", "contentPacksManifest.ini", "path to the content pack catalogue")
	verbose := pflag.BoolP("verbose", "v", false, "debug logging")
	pflag.Parse()

	if *verbose {
		slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelDebug})))
	}

	die(pflag.NArg() != 1, "usage: valkyrie-scenario-catalogue [flags] <GameType>")

	// an optional .env can carry GITHUB_TOKEN. absence is fine.
	godotenv.Load()

	game_type := pflag.Arg(0)
	out_dir := output_dir(game_type)
	cfg := default_config()
	fs := afero.NewOsFs()

	slog.Info("syncing catalogues", "game-type", game_type, "output-dir", out_dir)

	err := run_batch(cfg, fs, *catalogue_path, out_dir+"/manifestDownload.ini", PACKAGE_EXT, "scenarios")
	if err != nil {
		slog.Error("scenario batch failed", "error", err)
		fatal()
	}

	present, _ := afero.Exists(fs, *pack_catalogue_path)
	if !present {
		slog.Info("no content pack catalogue, skipping", "path", *pack_catalogue_path)
		return
	}
	err = run_batch(cfg, fs, *pack_catalogue_path, out_dir+"/contentPacksDownload.ini", PACKAGE_EXT, "content packs")
	if err != nil {
		slog.Error("content pack batch failed", "error", err)
		fatal()
	}
}
