package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"dodo/internal/autostart"
	"dodo/internal/config"
	"dodo/internal/services"
)

func main() {
	install := flag.Bool("install", false, "Install dodo to Windows startup")
	uninstall := flag.Bool("uninstall", false, "Remove dodo from Windows startup")
	status := flag.Bool("status", false, "Check if dodo is installed to startup")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	switch {
	case *install:
		runInstall()
		return
	case *uninstall:
		runUninstall()
		return
	case *status:
		runStatus()
		return
	}

	runTray()
}

func runInstall() {
	created, err := autostart.Install()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error installing to startup: %v\n", err)
		os.Exit(1)
	}
	path, _ := autostart.ShortcutPath()
	if !created {
		fmt.Printf("Dodo is already installed to startup: %s\n", path)
		return
	}
	fmt.Printf("Dodo installed to startup: %s\n", path)
	fmt.Println("Dodo will now start automatically when you log in to Windows.")
}

func runUninstall() {
	removed, err := autostart.Uninstall()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error removing from startup: %v\n", err)
		os.Exit(1)
	}
	if !removed {
		fmt.Println("Dodo is not currently installed to startup.")
		return
	}
	fmt.Println("Dodo removed from startup; it will no longer start automatically.")
}

func runStatus() {
	if autostart.Installed() {
		path, _ := autostart.ShortcutPath()
		fmt.Printf("Dodo is installed to startup: %s\n", path)
		return
	}
	fmt.Println("Dodo is not currently installed to startup.")
	fmt.Println(`Run "dodo --install" to add it to startup.`)
}

func runTray() {
	lock := services.NewInstanceLock("dodo")
	if !lock.TryLock() {
		fmt.Fprintln(os.Stderr, "Another dodo instance is already running.")
		os.Exit(1)
	}
	defer lock.Release()

	cfg, err := config.Load(config.Path())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	done := make(chan struct{})
	svc, err := services.New(cfg, services.Dependencies{
		OnExit: func() { close(done) },
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize Virtual Desktop Manager: %v\n", err)
		fmt.Fprintln(os.Stderr, "Note: dodo requires Windows 10/11 with virtual desktops enabled.")
		os.Exit(1)
	}
	svc.Start()
	slog.Info("[dodo] running; use the tray icon or Alt+<digit> to switch desktops")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
	case s := <-sig:
		slog.Info("[dodo] shutting down", "signal", s.String())
		svc.Stop()
	}
}
