package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"usbuart/config"
	"usbuart/core"
	"usbuart/host/hostlog"
	"usbuart/host/probe"
	"usbuart/host/serial"
	"usbuart/host/usbfind"
)

var (
	device     = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud       = flag.Uint("baud", 115200, "Line coding baud rate sent to the bridge")
	configPath = flag.String("config", "", "Bridge configuration JSON (clock settings for -table and -sim)")
	timeout    = flag.Duration("timeout", time.Second, "Per-transfer loopback timeout")
	list       = flag.Bool("list", false, "List CDC-ACM devices on the USB bus")
	table      = flag.Bool("table", false, "Print the divider table for standard baud rates")
	simulate   = flag.Bool("sim", false, "Run the loopback probe against a simulated bridge")
	term       = flag.Bool("term", false, "Interactive line terminal on the device")
	verbose    = flag.Bool("v", false, "Enable debug logging")
	jsonLog    = flag.Bool("json", false, "Log in JSON format")
)

func main() {
	flag.Parse()

	if *jsonLog {
		hostlog.SetLogFormat(hostlog.LogFormatJSON)
	}
	if *verbose {
		hostlog.SetLogLevel(slog.LevelDebug)
	}

	out := hostlog.Stdout()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fatal(err)
	}

	switch {
	case *list:
		err = runList(out)
	case *table:
		err = runTable(out, cfg)
	case *simulate:
		err = runSim(out, cfg)
	case *term:
		err = runTerm(out)
	default:
		err = runProbe(out)
	}
	if err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	hostlog.LogError(hostlog.ComponentCLI, "fatal", "err", err)
	os.Exit(1)
}

func loadConfig(path string) (*core.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return config.LoadConfig(data)
}

func runList(out *hostlog.Console) error {
	devs, err := usbfind.ListCDC()
	if err != nil {
		return err
	}
	if len(devs) == 0 {
		fmt.Fprintln(out, "No CDC-ACM devices found")
		return nil
	}
	for _, d := range devs {
		fmt.Fprintln(out, d)
		if d.InPacketSize != 0 && d.InPacketSize != 64 {
			hostlog.LogWarn(hostlog.ComponentUSB, "unexpected bulk IN packet size",
				"device", d.String(), "size", d.InPacketSize)
		}
	}
	return nil
}

func runTable(out *hostlog.Console, cfg *core.Config) error {
	rows, sum := probe.Table(cfg.BusClockHz, cfg.Prescale, probe.StandardBauds)

	fmt.Fprintf(out, "Bus clock %d Hz, prescale %d, effective %d Hz\n\n",
		cfg.BusClockHz, cfg.Prescale, cfg.BusClockHz/cfg.Prescale)
	fmt.Fprintf(out, "%8s %8s %12s %8s %8s\n", "baud", "divider", "actual", "error", "period")
	for _, r := range rows {
		if r.Err != nil {
			fmt.Fprintf(out, "%8d %s\n", r.Baud, out.Status("unreachable", false))
			continue
		}
		e := fmt.Sprintf("%+7.3f%%", r.ErrorPercent())
		fmt.Fprintf(out, "%8d %8d %12.1f %s %8d\n",
			r.Baud, r.Divider.Value, r.Divider.Rate, out.Status(e, abs(r.ErrorPercent()) < 2), r.Divider.TimerPeriod)
	}
	fmt.Fprintf(out, "\n%d reachable, mean |error| %.3f%%, worst %d at %.3f%%\n",
		sum.Reachable, sum.MeanAbsError, sum.Worst, sum.MaxAbsError)
	return nil
}

func runSim(out *hostlog.Console, cfg *core.Config) error {
	if *verbose {
		core.SetDebugWriter(func(s string) { hostlog.LogDebug(hostlog.ComponentSim, s) })
		core.SetDebugEnabled(true)
	}

	port, err := probe.NewSimPort(*cfg)
	if err != nil {
		return err
	}
	defer port.Close()

	hostlog.LogInfo(hostlog.ComponentSim, "simulated bridge started",
		"baud", cfg.DefaultBaud, "divider", port.Bridge.Divider().Value)

	if err := report(out, port, 10*time.Millisecond); err != nil {
		return err
	}

	s := port.Bridge.Stats()
	fmt.Fprintf(out, "\niterations %d, host->uart %d, uart->host %d, packets %d, zlps %d, stalls %d\n",
		s.Iterations, s.HostToUART, s.UARTToHost, s.Packets, s.ZLPs, s.Stalls)
	port.Bridge.Events().Dump(func(line string) { fmt.Fprintln(out, line) })
	return nil
}

func openPort() (serial.Port, error) {
	cfg := serial.DefaultConfig(*device)
	cfg.Line.DTERate = uint32(*baud)
	hostlog.LogDebug(hostlog.ComponentSerial, "opening", "device", cfg.Device, "line", cfg.Line.String())
	return serial.Open(cfg)
}

func runProbe(out *hostlog.Console) error {
	port, err := openPort()
	if err != nil {
		return err
	}
	defer port.Close()

	if err := port.Flush(); err != nil {
		hostlog.LogWarn(hostlog.ComponentSerial, "flush failed", "err", err)
	}
	fmt.Fprintf(out, "Loopback on %s at %d baud (jumper TX to RX)\n\n", *device, *baud)
	return report(out, port, *timeout)
}

func report(out *hostlog.Console, port io.ReadWriter, wait time.Duration) error {
	results, err := probe.Loopback(port, probe.DefaultSizes, wait)
	failed := 0
	for _, r := range results {
		fmt.Fprintln(out, out.Status(r.String(), r.OK()))
		hostlog.LogDebug(hostlog.ComponentProbe, "transfer",
			"size", r.Size, "received", r.Received, "elapsed", r.Elapsed)
		if !r.OK() {
			failed++
		}
	}
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d transfers failed", failed, len(results))
	}
	return nil
}

func runTerm(out *hostlog.Console) error {
	port, err := openPort()
	if err != nil {
		return err
	}
	defer func() { port.Close() }()

	fmt.Fprintf(out, "Connected to %s at %d baud ('help' for commands)\n", *device, *baud)
	scanner := bufio.NewScanner(os.Stdin)
	buf := make([]byte, 256)

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "quit" || line == "exit" || line == "q":
			return nil

		case line == "help" || line == "?":
			printHelp(out)
			continue

		case strings.HasPrefix(line, "baud "):
			rate, err := strconv.ParseUint(strings.TrimSpace(line[5:]), 10, 32)
			if err != nil || rate == 0 {
				fmt.Fprintf(out, "invalid baud rate: %q\n", line[5:])
				continue
			}
			// Reopening sends a fresh SET_LINE_CODING
			port.Close()
			*baud = uint(rate)
			if port, err = openPort(); err != nil {
				return err
			}
			fmt.Fprintf(out, "line coding %d baud\n", rate)
			continue
		}

		if _, err := port.Write([]byte(line + "\r\n")); err != nil {
			return fmt.Errorf("write: %w", err)
		}
		for {
			n, err := port.Read(buf)
			if n > 0 {
				out.Write(buf[:n])
			}
			if n == 0 || err != nil {
				break
			}
		}
		fmt.Fprintln(out)
	}
	return scanner.Err()
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "\nAvailable commands:")
	fmt.Fprintln(out, "  baud <rate>    - Change the bridge line coding")
	fmt.Fprintln(out, "  quit/exit/q    - Exit the program")
	fmt.Fprintln(out, "  anything else  - Sent to the UART followed by CRLF")
	fmt.Fprintln(out)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
