package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/tacusci/logging/v2"
	"github.com/takama/daemon"
	"github.com/tauraamui/photoframed/api"
	"github.com/tauraamui/photoframed/pkg/config"
	"github.com/tauraamui/photoframed/pkg/display"
	"github.com/tauraamui/photoframed/pkg/history"
	"github.com/tauraamui/photoframed/pkg/slideshow"
)

const (
	name        = "photoframed"
	description = "Photo frame daemon which renders a photo slideshow to a USB serial LCD panel"

	defaultRPCListenPort = ":3122"
)

type Service struct {
	daemon.Daemon
}

func (service *Service) Manage() (string, error) {
	usage := "Usage: photoframed install | remove | start | stop | status"

	if len(os.Args) > 1 {
		command := os.Args[1]
		switch command {
		case "install":
			return service.Install()
		case "remove":
			return service.Remove()
		case "start":
			return service.Start()
		case "stop":
			return service.Stop()
		case "status":
			return service.Status()
		default:
			return usage, nil
		}
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	logging.Info("Starting photo frame daemon...")

	resolver := config.DefaultResolver()
	cfg, err := resolver.Resolve()
	if err != nil {
		return "Unable to load config", err
	}

	if cfg.Debug {
		logging.SetLevel(logging.DebugLevel)
	}

	sink := display.NewTuringRevA(cfg.Display.ComPort)
	if err := sink.Initialize(); err != nil {
		return "Unable to initialize display", err
	}
	defer sink.Close()

	if err := sink.SetBrightness(cfg.Display.Brightness); err != nil {
		logging.Warn("Unable to set panel brightness: %v", err)
	}

	var recorder slideshow.FolderRecorder
	if db, err := history.Connect(); err != nil {
		logging.Warn("Folder history unavailable: %v", err)
	} else {
		recorder = &history.FolderUseRepository{DB: db}
	}

	driver := slideshow.New(sink, resolver, recorder)
	if err := driver.Start(); err != nil {
		return "Unable to start slideshow", err
	}

	apiServer := api.New(driver, api.Options{
		RPCListenPort: defaultRPCListenPort,
		SigningSecret: cfg.Secret,
	})
	if err := api.StartRPC(apiServer); err != nil {
		logging.Warn("Unable to start control API: %v", err)
	}

	killSignal := <-interrupt
	logging.Error("Received signal: %s", killSignal)

	if err := api.ShutdownRPC(apiServer); err != nil {
		logging.Warn("Control API shutdown unsuccessful: %v", err)
	}

	driver.Stop()

	return "Shutdown successful... BYE! 👋", nil
}

func init() {
	logging.ColorLogLevelLabelOnly = true
	logging.SetLevel(logging.InfoLevel)
}

func main() {
	daemonType := daemon.SystemDaemon
	if runtime.GOOS == "darwin" {
		daemonType = daemon.UserAgent
	}

	srv, err := daemon.New(name, description, daemonType)
	if err != nil {
		logging.Error(err.Error())
		os.Exit(1)
	}

	service := &Service{srv}
	status, err := service.Manage()
	if err != nil {
		logging.Error(fmt.Sprint(status, err.Error()))
		os.Exit(1)
	}

	fmt.Println(status)
}
