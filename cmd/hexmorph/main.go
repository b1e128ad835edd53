package main

import (
	"bufio"
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/blang/semver"
	"github.com/joho/godotenv"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/term"

	"github.com/kelindar/hexmorph"
	"github.com/kelindar/hexmorph/imageio"
	"github.com/kelindar/hexmorph/utils"
)

const HelpBanner = `
┌─┐ ┬ ┬┌─┐┬  ┬┌┬┐┌─┐┬─┐┌─┐┬ ┬
├─┤ │ │├┤ │  │ │ ├┤ ├┬┘├─┘├─┤
└─┘ └─┘└─┘┴─┘┴ ┴ └─┘┴└─┴  ┴ ┴

Visual cellular-rewrite engine.
    Version: %s

`

// pipeName indicates that stdin/stdout is being used as file names.
const pipeName = "-"

// Version indicates the current build version.
var Version string

func envOrInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			return n
		}
	}
	return fallback
}

var (
	source     = flag.String("in", pipeName, "source material map image")
	dest       = flag.String("out", pipeName, "destination material map image")
	format     = flag.String("format", "", "image format for stdin/stdout (e.g. qoi, png); required when -in/-out is \"-\"")
	minVersion = flag.String("min-version", "", "fail unless the running binary is at least this semver")
	showVer    = flag.Bool("version", false, "print version and exit")
	tracePath  = flag.String("trace", "", "write a zstd-compressed archive of every intermediate material map")
)

func main() {
	log.SetFlags(0)

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf(utils.DecorateText(fmt.Sprintf("failed to read .env: %v", err), utils.ErrorMessage))
	}

	budgetFlag := flag.Int("budget", envOrInt("HEXMORPH_BUDGET", 0), "max stabilize steps (0 = unbounded)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVer {
		fmt.Println(Version)
		return
	}
	if *minVersion != "" {
		checkMinVersion(*minVersion)
	}

	if err := run(*source, *dest, *format, *budgetFlag, *tracePath); err != nil {
		log.Fatalf(utils.DecorateText(err.Error(), utils.ErrorMessage))
	}
}

func checkMinVersion(constraint string) {
	cur, err := semver.Parse(Version)
	if err != nil {
		log.Fatalf(utils.DecorateText(fmt.Sprintf("unparseable build version %q: %v", Version, err), utils.ErrorMessage))
	}
	req, err := semver.Parse(constraint)
	if err != nil {
		log.Fatalf(utils.DecorateText(fmt.Sprintf("unparseable -min-version %q: %v", constraint, err), utils.ErrorMessage))
	}
	if cur.LT(req) {
		log.Fatalf(utils.DecorateText(fmt.Sprintf("hexmorph %s is older than required %s", cur, req), utils.ErrorMessage))
	}
}

func run(srcPath, dstPath, format string, budget int, tracePath string) error {
	src, srcExt, err := openSource(srcPath, format)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer src.Close()

	materialMap, err := imageio.Decode(bufio.NewReader(src), srcExt)
	if err != nil {
		return fmt.Errorf("decoding source: %w", err)
	}

	world := hexmorph.FromMaterialMap(materialMap)
	interp := hexmorph.NewInterpreter()

	var tracer *traceWriter
	if tracePath != "" {
		tracer, err = newTraceWriter(tracePath)
		if err != nil {
			return fmt.Errorf("opening trace archive: %w", err)
		}
		defer tracer.Close()
	}

	msg := fmt.Sprintf("%s %s",
		utils.DecorateText("⬡ hexmorph", utils.StatusMessage),
		utils.DecorateText("⇢ stabilizing world...", utils.DefaultMessage),
	)
	spinner := utils.NewSpinner(msg, time.Millisecond*80, true)
	spinner.Start()

	start := time.Now()
	applied, stabilizeErr := stabilizeWithTrace(world, interp, budget, tracer)
	spinner.StopMsg = fmt.Sprintf("%s %s\n",
		utils.DecorateText("⬡ hexmorph", utils.StatusMessage),
		utils.DecorateText(fmt.Sprintf("⇢ %d rule application(s) in %s", applied, utils.FormatTime(time.Since(start))), utils.SuccessMessage),
	)
	spinner.Stop()
	if stabilizeErr != nil {
		return fmt.Errorf("stabilizing: %w", stabilizeErr)
	}

	if tracer != nil {
		if n, err := tracer.Size(); err == nil {
			fmt.Fprintf(os.Stderr, "trace archive: %s\n", utils.FormatBytes(n))
		}
	}

	dst, dstExt, err := openDestination(dstPath, format)
	if err != nil {
		return fmt.Errorf("opening destination: %w", err)
	}
	defer dst.Close()

	if err := imageio.Encode(dst, world.MaterialMap, dstExt); err != nil {
		return fmt.Errorf("encoding destination: %w", err)
	}
	return nil
}

func stabilizeWithTrace(world *hexmorph.World, interp *hexmorph.Interpreter, budget int, tracer *traceWriter) (int, error) {
	if tracer == nil {
		return hexmorph.Stabilize(world, interp, budget)
	}

	applied := 0
	for budget <= 0 || applied < budget {
		if err := tracer.WriteFrame(world.MaterialMap); err != nil {
			return applied, err
		}
		ok, err := interp.Step(world)
		if err != nil {
			return applied, err
		}
		if !ok {
			break
		}
		applied++
	}
	_ = tracer.WriteFrame(world.MaterialMap)
	return applied, nil
}

func openSource(path, format string) (*os.File, string, error) {
	if path == pipeName {
		if format == "" {
			return nil, "", fmt.Errorf("-format is required when -in is %q", pipeName)
		}
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, "", fmt.Errorf("-in %q should be used with a pipe for stdin", pipeName)
		}
		return os.Stdin, "." + format, nil
	}
	f, err := os.Open(path)
	return f, filepath.Ext(path), err
}

func openDestination(path, format string) (*os.File, string, error) {
	if path == pipeName {
		if format == "" {
			return nil, "", fmt.Errorf("-format is required when -out is %q", pipeName)
		}
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, "", fmt.Errorf("-out %q should be used with a pipe for stdout", pipeName)
		}
		return os.Stdout, "." + format, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	return f, filepath.Ext(path), err
}

// traceWriter appends a length-prefixed QOI frame to a zstd-compressed
// archive on every stabilize step, for post-hoc debugging. It is
// write-only: the core never reads it back.
type traceWriter struct {
	file *os.File
	zw   *zstd.Encoder
}

func newTraceWriter(path string) (*traceWriter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	zw, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &traceWriter{file: f, zw: zw}, nil
}

func (t *traceWriter) WriteFrame(m *hexmorph.Pixmap[hexmorph.Material]) error {
	var buf bufWriter
	if err := imageio.Encode(&buf, m, ".qoi"); err != nil {
		return err
	}
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(buf.data)))
	if _, err := t.zw.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := t.zw.Write(buf.data)
	return err
}

func (t *traceWriter) Size() (int64, error) {
	fi, err := t.file.Stat()
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

func (t *traceWriter) Close() error {
	if err := t.zw.Close(); err != nil {
		t.file.Close()
		return err
	}
	return t.file.Close()
}

// bufWriter is a minimal io.Writer accumulating bytes, used to size-prefix
// each trace frame before it hits the zstd stream.
type bufWriter struct {
	data []byte
}

func (b *bufWriter) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}
