package main

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/zombor/smart-pantry/internal/pantry"
	"github.com/zombor/smart-pantry/internal/scanning"
	"github.com/zombor/smart-pantry/internal/web"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	// A missing .env is fine; flags and the environment still apply
	_ = godotenv.Load()

	fs := ff.NewFlagSet("smart-pantry")
	var (
		port              = fs.IntLong("port", 8080, "HTTP server port")
		archivePath       = fs.StringLong("archive", "smart-pantry.db", "Snapshot archive file path (empty disables snapshots)")
		storagePath       = fs.StringLong("storage", "./receipts", "Directory for receipt images under review")
		ocrType           = fs.StringLong("ocr", "gemini", "Receipt reader: 'gemini', 'ollama' or 'tesseract'")
		llmType           = fs.StringLong("llm", "gemini", "Text model for estimates, cleanup and recipes: 'gemini', 'ollama' or 'none'")
		geminiKey         = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel       = fs.StringLong("gemini-model", "gemini-1.5-flash", "Google Gemini model name")
		ollamaURL         = fs.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL")
		ollamaModel       = fs.StringLong("ollama-model", "llama3", "Ollama text model name")
		ollamaVisionModel = fs.StringLong("ollama-vision-model", "llava", "Ollama vision model name (e.g., llava, bakllava, qwen2-vl)")
		tesseractBin      = fs.StringLong("tesseract-bin", "tesseract", "Tesseract executable")
		horizon           = fs.IntLong("horizon", 3, "Days ahead counted as expiring soon")
		sessionTTL        = fs.DurationLong("session-ttl", 24*time.Hour, "Drop sessions idle for longer than this (0 keeps them)")
		authUser          = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass          = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
		showVersion       = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("SMART_PANTRY"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Check version flag after parsing
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Backends opened below, closed on shutdown
	var opened []io.Closer

	// Gemini is shared between receipt reading and text generation
	var gemini *scanning.Gemini
	getGemini := func() *scanning.Gemini {
		if gemini != nil {
			return gemini
		}
		apiKey := *geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			slog.Error("Gemini API key is required. Set --gemini-key flag or GEMINI_API_KEY environment variable")
			os.Exit(1)
		}
		slog.Info("Initializing Gemini...", "model", *geminiModel)
		var err error
		gemini, err = scanning.NewGemini(apiKey, *geminiModel)
		if err != nil {
			slog.Error("Failed to initialize Gemini", "error", err)
			os.Exit(1)
		}
		opened = append(opened, gemini)
		return gemini
	}

	var ollama *scanning.Ollama
	getOllama := func() *scanning.Ollama {
		if ollama != nil {
			return ollama
		}
		slog.Info("Initializing Ollama...", "url", *ollamaURL, "model", *ollamaModel, "vision_model", *ollamaVisionModel)
		var err error
		ollama, err = scanning.NewOllama(*ollamaURL, *ollamaModel, *ollamaVisionModel)
		if err != nil {
			slog.Error("Failed to initialize Ollama", "error", err)
			os.Exit(1)
		}
		opened = append(opened, ollama)
		return ollama
	}

	// Initialize text generator based on type
	var generator scanning.TextGenerator
	switch *llmType {
	case "gemini":
		generator = getGemini()
	case "ollama":
		generator = getOllama()
	case "none":
		slog.Warn("No text model configured; unknown foods get no expiry estimate and the recipe chat is disabled")
	default:
		slog.Error("Invalid llm type", "type", *llmType, "valid", "gemini, ollama or none")
		os.Exit(1)
	}

	// Initialize receipt reader based on type
	var scanner scanning.Scanner
	switch *ocrType {
	case "gemini":
		scanner = getGemini()
	case "ollama":
		scanner = getOllama()
	case "tesseract":
		slog.Info("Initializing Tesseract...", "bin", *tesseractBin)
		tesseract, err := scanning.NewTesseract(*tesseractBin)
		if err != nil {
			slog.Error("Failed to initialize Tesseract", "error", err)
			os.Exit(1)
		}
		opened = append(opened, tesseract)
		scanner = tesseract
	default:
		slog.Error("Invalid ocr type", "type", *ocrType, "valid", "gemini, ollama or tesseract")
		os.Exit(1)
	}

	defer closeBackends(opened...)

	// Initialize snapshot archive
	var archive pantry.Archive
	if *archivePath != "" {
		slog.Info("Initializing snapshot archive...", "path", *archivePath)
		boltArchive, err := pantry.NewBoltArchive(*archivePath)
		if err != nil {
			slog.Error("Failed to initialize snapshot archive", "error", err)
			os.Exit(1)
		}
		defer boltArchive.Close()
		archive = boltArchive
	} else {
		slog.Info("Snapshot archive disabled")
	}

	// Initialize storage
	slog.Info("Initializing storage...", "path", *storagePath)
	store, err := web.NewLocalStorage(*storagePath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	// Initialize service
	clock := pantry.SystemClock{}
	ids := pantry.UUIDGenerator{}
	estimator := pantry.NewEstimator(generator)
	service := web.NewService(web.ServiceConfig{
		Sessions:    web.NewSessions(generator, ids, clock, *sessionTTL),
		Estimator:   estimator,
		Importer:    pantry.NewImporter(estimator, scanner, generator, clock),
		Archive:     archive,
		Storage:     store,
		IDGenerator: ids,
		Clock:       clock,
		Horizon:     *horizon,
	})

	// Initialize server
	basicAuth := web.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	}
	server := web.NewServer(service, basicAuth)

	// Start server in goroutine
	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr), "version", version)
	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}

// closeBackends closes each backend once, even when one serves as both the
// receipt reader and the text model
func closeBackends(backends ...io.Closer) {
	closed := make(map[io.Closer]bool, len(backends))
	for _, backend := range backends {
		if backend == nil || closed[backend] {
			continue
		}
		closed[backend] = true
		if err := backend.Close(); err != nil {
			slog.Warn("Failed to close backend", "error", err)
		}
	}
}
