package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xptea/VWisper/audio"
	"github.com/xptea/VWisper/beep"
	"github.com/xptea/VWisper/config"
	"github.com/xptea/VWisper/encoder"
	"github.com/xptea/VWisper/hotkey"
	"github.com/xptea/VWisper/inject"
	"github.com/xptea/VWisper/log"
	"github.com/xptea/VWisper/store"
	"github.com/xptea/VWisper/transcriber"
)

var version = "dev"

func main() {
	deviceFlag := flag.String("device", "", "capture device name (default: system default)")
	langFlag := flag.String("lang", "", "transcription language code (e.g. en, tr)")
	formatFlag := flag.String("format", "", "upload format: wav or flac")
	strategyFlag := flag.String("strategy", "", "text injection strategy: clipboard or keystroke")
	logPathFlag := flag.String("logpath", "", "log directory (default: user cache dir)")
	listDevices := flag.Bool("list-devices", false, "list capture devices and exit")
	doctorFlag := flag.Bool("doctor", false, "check hotkey and audio prerequisites and exit")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println("vwisper", version)
		return
	}

	if err := run(*deviceFlag, *langFlag, *formatFlag, *strategyFlag, *logPathFlag, *listDevices, *doctorFlag); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(device, lang, format, strategy, logPath string, listDevices, doctor bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if device != "" {
		cfg.AudioDevice = device
	}
	if lang != "" {
		cfg.Language = lang
	}
	if format != "" {
		cfg.Format = format
	}
	if strategy != "" {
		cfg.InjectStrategy = strategy
	}
	overridden := device != "" || lang != "" || format != "" || strategy != ""
	if _, err := encoder.ParseFormat(cfg.Format); err != nil {
		return err
	}

	logDir, err := log.ResolveDir(logPath)
	if err != nil {
		return fmt.Errorf("resolving log directory: %w", err)
	}
	log.SetDir(logDir)
	if err := log.Init(); err != nil {
		return fmt.Errorf("opening logs: %w", err)
	}
	defer log.Close()
	log.Infof("log directory %s", log.Dir())

	// Flag overrides become the new persisted settings, like edits made
	// through a settings surface would.
	if overridden {
		if err := config.Save(cfg); err != nil {
			log.Warnf("persisting settings failed: %v", err)
		}
	}

	ctx, err := audio.NewContext()
	if err != nil {
		return fmt.Errorf("initializing audio: %w", err)
	}
	defer ctx.Close()

	if listDevices {
		return printDevices(ctx)
	}
	if doctor {
		return runDoctor(ctx)
	}

	if !cfg.SoundEnabled {
		beep.Disable()
	}
	// Synthesize the cue tones up front so the first one plays without a
	// lag.
	beep.Init()

	dataDir, err := store.DataDir()
	if err != nil {
		return fmt.Errorf("resolving data directory: %w", err)
	}
	st, err := store.OpenFileStore(dataDir, cfg.SaveHistory)
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}

	trans := transcriber.NewGroq(transcriber.GroqConfig{
		APIKey:   cfg.APIKey(),
		Model:    cfg.Model,
		Language: cfg.Language,
	})
	trans.Warm()

	recorder := NewRecorder(ctx, cfg.AudioDevice)
	if err := recorder.Open(); err != nil {
		return fmt.Errorf("opening capture device: %w", err)
	}
	defer recorder.Close()

	sink := newLogSink(cfg.SoundEnabled)
	pipeline := NewPipeline(cfg, recorder, sink, inject.New(cfg.InjectStrategy), st, trans)

	hk := hotkey.Debounce(hotkey.New(), time.Duration(cfg.DebounceMs)*time.Millisecond)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("registering hotkey: %w", err)
	}
	defer hk.Unregister()

	log.SessionStart(trans.Name(), recorder.DeviceName(), cfg.Format)
	fmt.Println("vwisper ready: hold Ctrl+Shift+Space to dictate")

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-hk.Keydown():
			pipeline.StartSession()
		case <-hk.Keyup():
			pipeline.StopSession()
		case <-hk.Cancel():
			pipeline.CancelSession()
		case <-sigs:
			fmt.Println("\nshutting down")
			pipeline.StopSession()
			pipeline.WaitIdle(10 * time.Second)
			if stats, serr := st.Stats(); serr == nil {
				log.SessionEnd(int(stats.TotalSessions))
			}
			return nil
		}
	}
}

func printDevices(ctx audio.Context) error {
	devices, err := ctx.Devices()
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		return audio.ErrNoInputDevice
	}
	for _, d := range devices {
		note := ""
		if audio.IsBluetooth(d.Name) {
			note = "  (bluetooth, reduced quality)"
		}
		fmt.Printf("%s%s\n", d.Name, note)
	}
	return nil
}

func runDoctor(ctx audio.Context) error {
	msg, err := hotkey.Diagnose()
	if err != nil {
		fmt.Println("hotkey: FAIL -", err)
	} else {
		fmt.Println("hotkey: ok -", msg)
	}

	devices, derr := ctx.Devices()
	if derr != nil || len(devices) == 0 {
		fmt.Println("audio:  FAIL - no capture devices")
	} else {
		fmt.Printf("audio:  ok - %d capture device(s)\n", len(devices))
	}

	if err != nil {
		return err
	}
	return derr
}
