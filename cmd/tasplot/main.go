// Command tasplot plots images in Mario Paint by generating mouse input
// for the BizHawk emulator.
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/kortschak/qr"
	log "github.com/sirupsen/logrus"
	"tasplot.dev/bizhawk"
	"tasplot.dev/link"
	"tasplot.dev/mask"
	"tasplot.dev/plotter"
	"tasplot.dev/preview"
	"tasplot.dev/scrollback"
)

var (
	configFile  = flag.String("config", "", "TOML configuration file")
	serialDev   = flag.String("device", "", "serial device acknowledging batches")
	depth       = flag.Int("scrollback", 0, "lines per batch (overrides the configuration)")
	output      = flag.String("o", "", "write the input log to file instead of standard output")
	rollFile    = flag.String("roll", "", "save the piano roll to file on exit")
	previewFile = flag.String("preview", "", "render the drawing to a PNG file on exit")
	maskFile    = flag.String("mask", "", "plot the mask image in file and exit")
	qrText      = flag.String("qr", "", "plot text as a QR code and exit")
	qrLevel     = flag.String("qrlevel", "M", "QR error correction level, one of L, M, Q, H")
	qrScale     = flag.Int("qrscale", 1, "QR module size in pixels")
	verbose     = flag.Bool("v", false, "log every visited pixel")
)

// Preview rendering parameters.
const (
	previewScale = 4
	previewWidth = 3
)

// session holds the plotting pipeline: plotter, then recorder and
// preview paper, then the scrollback buffer.
type session struct {
	cfg     config
	log     *log.Logger
	p       *plotter.Plotter
	buf     *scrollback.Buffer
	rec     *bizhawk.Recorder
	paper   *preview.Paper
	qrLevel qr.Level
	qrScale int
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tasplot: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := log.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}
	plotter.SetLogger(logger)

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return err
	}
	if *serialDev != "" {
		cfg.Device = *serialDev
	}
	if *depth != 0 {
		cfg.Scrollback = *depth
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	level, err := mask.ParseLevel(*qrLevel)
	if err != nil {
		return err
	}

	stdin := bufio.NewReader(os.Stdin)
	var (
		out io.Writer
		ack scrollback.Acknowledger
	)
	switch {
	case cfg.Device != "":
		dev, err := link.Open(cfg.Device)
		if err != nil {
			return err
		}
		defer dev.Close()
		l := link.New(dev)
		out, ack = l, l
	case *output != "":
		f, err := os.Create(*output)
		if err != nil {
			return err
		}
		defer f.Close()
		out, ack = f, scrollback.None
	default:
		out, ack = os.Stdout, scrollback.NewPrompt(stdin, os.Stdout)
	}

	s := newSession(cfg, out, ack)
	s.log = logger
	s.qrLevel, s.qrScale = level, *qrScale

	switch {
	case *maskFile != "":
		m, err := mask.Load(*maskFile)
		if err != nil {
			return err
		}
		s.loaded(*maskFile, m)
		err = s.plot(m)
		if err == nil {
			err = s.p.Flush()
		}
		if err != nil {
			return err
		}
	case *qrText != "":
		m, err := mask.QR(*qrText, level, *qrScale)
		if err != nil {
			return err
		}
		s.loaded("qr", m)
		err = s.plot(m)
		if err == nil {
			err = s.p.Flush()
		}
		if err != nil {
			return err
		}
	default:
		sh := &shell{session: s, in: stdin, out: os.Stdout}
		if err := sh.run(); err != nil {
			return err
		}
	}
	return s.save(*rollFile, *previewFile)
}

func newSession(cfg config, out io.Writer, ack scrollback.Acknowledger) *session {
	s := &session{
		cfg:     cfg,
		log:     plotter.Logger(),
		buf:     scrollback.New(out, cfg.Scrollback, ack),
		paper:   preview.NewPaper(image.Point{}),
		qrLevel: qr.M,
		qrScale: 1,
	}
	s.rec = bizhawk.NewRecorder(s.buf)
	s.p = plotter.New(cfg.Plotter, plotter.Tee(s.rec, s.paper))
	st := s.p.State()
	s.paper.Jump(image.Pt(int(st.X), int(st.Y)))
	return s
}

// plot draws m and checks the result against the mask.
// loaded logs the size of a freshly loaded mask.
func (s *session) loaded(src string, m *mask.Bitmap) {
	s.log.WithFields(log.Fields{
		"source": src,
		"width":  m.Width(),
		"height": m.Height(),
		"dark":   m.Count(),
	}).Info("mask loaded")
}

func (s *session) plot(m plotter.Mask) error {
	r, err := s.p.Mask(m)
	if err != nil {
		return err
	}
	st := s.p.State()
	res := preview.Audit(m, image.Pt(st.OffsetX, st.OffsetY), s.paper)
	fields := log.Fields{
		"targets": r.Targets,
		"lifts":   r.Lifts,
		"frames":  r.Ticks,
		"missed":  len(res.Missed),
		"strays":  len(res.Strays),
	}
	if res.Clean() {
		s.log.WithFields(fields).Info("plotted")
	} else {
		s.log.WithFields(fields).Warn("plotted with differences")
	}
	for _, st := range res.Strays {
		s.log.WithFields(log.Fields{"pixel": st.Pixel, "frames": st.Ticks}).Debug("stray pixel")
	}
	return nil
}

// save writes the piano roll and the preview image, if requested.
func (s *session) save(rollPath, previewPath string) error {
	if rollPath != "" {
		buf := new(bytes.Buffer)
		if err := s.rec.Roll().Save(buf); err != nil {
			return err
		}
		if err := os.WriteFile(rollPath, buf.Bytes(), 0o644); err != nil {
			return err
		}
	}
	if previewPath != "" {
		c := s.cfg.Plotter
		screen := image.Rect(int(c.MinX), int(c.MinY), int(c.MaxX)+1, int(c.MaxY)+1)
		img := preview.Image(s.paper, screen, previewScale, previewWidth)
		buf := new(bytes.Buffer)
		if err := png.Encode(buf, img); err != nil {
			return err
		}
		if err := os.WriteFile(previewPath, buf.Bytes(), 0o644); err != nil {
			return err
		}
	}
	stats := s.paper.Stats()
	s.log.WithFields(log.Fields{
		"frames":  stats.Ticks,
		"strokes": stats.Strokes,
		"pixels":  stats.Pixels,
		"ink":     stats.Ink,
		"travel":  stats.Travel,
	}).Info("session done")
	return nil
}
