package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/ttf"
	"github.com/pterm/pterm"
	"golang.org/x/text/unicode/norm"
)

// tracer traces with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":   "go",
		"trace.tyse.fonts":  "Info",
		"trace.font.ttf":    "Error",
		"trace.font.raster": "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font to load")
	size := flag.Int("size", 32, "Render size in pixels per em")
	invert := flag.Bool("invert", false, "Render white on black")
	flag.Parse()
	conf.Set("render.size", strconv.Itoa(*size))
	conf.Set("render.invert", strconv.FormatBool(*invert))
	tracer().SetTraceLevel(tracing.LevelError)    // will set the correct level later
	pterm.Info.Println("Welcome to TrueType CLI") // colored welcome message
	//
	// set up REPL
	repl, err := readline.New("ttf > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl, conf: conf}
	//
	// load font to use
	if err := intp.loadFont(*fontname); err != nil { // font name provided by flag
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	font *ttf.ScalableFont
	repl *readline.Instance
	conf testconfig.Conf
}

func (intp *Intp) String() string {
	if intp == nil || intp.font == nil {
		return "()"
	}
	return fmt.Sprintf("( font=%s size=%d )", intp.font.Fontname, intp.conf.GetInt("render.size"))
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

type Op struct {
	code   int
	arg    string
	format string
}

type Command struct {
	count int
	op    [32]Op
}

const NOOP = -1
const (
	// op-code QUIT will not have arguments
	QUIT int = iota
	// op-codes below may have arguments
	HELP
	TABLES
	HEAD
	METRICS
	CMAP
	GLYPH
	OUTLINE
	RENDER
	SET
)

var opMap = map[string]int{
	"quit":    QUIT,
	"help":    HELP,
	"tables":  TABLES,
	"head":    HEAD,
	"metrics": METRICS,
	"cmap":    CMAP,
	"glyph":   GLYPH,
	"outline": OUTLINE,
	"render":  RENDER,
	"set":     SET,
}

var opNames = []string{
	"quit",
	"help",
	"tables",
	"head",
	"metrics",
	"cmap",
	"glyph",
	"outline",
	"render",
	"set",
}

// parseCommand splits a line into steps, separated by spaces. Each step is an
// op-code with optional argument and format, separated by colons, e.g.
// "render:S:64" or "metrics:a".
func parseCommand(line string) (*Command, error) {
	command := &Command{}
	for i := range command.op {
		command.op[i].code = NOOP
	}
	steps := strings.Fields(line)
	if len(steps) > len(command.op) {
		return nil, fmt.Errorf("too many steps in command: %d", len(steps))
	}
	command.count = len(steps)
	for i, step := range steps {
		c := strings.SplitN(step, ":", 3) // e.g. "render:S:64" or "help:render" or "tables"
		code, ok := opMap[strings.ToLower(c[0])]
		if !ok {
			code = HELP
		}
		command.op[i].code = code
		if code == QUIT {
			return command, nil
		}
		command.op[i].arg = getOptArg(c, 1)
		command.op[i].format = getOptArg(c, 2)
		if command.op[i].arg == "" {
			tracer().Debugf("%s", opNames[code])
		} else {
			tracer().Debugf("%s: looking for '%s'", opNames[code], command.op[i].arg)
		}
	}
	return command, nil
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:    quitOp,
	HELP:    helpOp,
	TABLES:  tablesOp,
	HEAD:    headOp,
	METRICS: metricsOp,
	CMAP:    cmapOp,
	GLYPH:   glyphOp,
	OUTLINE: outlineOp,
	RENDER:  renderOp,
	SET:     setOp,
}

func (intp *Intp) execute(cmd *Command) (err error, stop bool) {
	tracer().Debugf("cmd = %v", cmd.op[:cmd.count])
	for _, c := range cmd.op {
		if c.code == NOOP {
			break
		}
		f, ok := commandFn[c.code]
		if !ok {
			pterm.Error.Printf("unknown command code: %d\n", c.code)
			return nil, false
		}
		err, stop = f(intp, &c)
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		if stop {
			return
		}
	}
	return
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

// setOp changes a render setting, e.g. "set:size:64" or "set:invert:true".
func setOp(intp *Intp, op *Op) (error, bool) {
	switch op.arg {
	case "size":
		n, err := strconv.Atoi(op.format)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid render size: %q", op.format), false
		}
	case "invert":
		if _, err := strconv.ParseBool(op.format); err != nil {
			return fmt.Errorf("invalid flag value: %q", op.format), false
		}
	default:
		return fmt.Errorf("unknown setting: %q", op.arg), false
	}
	old := intp.conf.Set("render."+op.arg, op.format)
	pterm.Printf("render.%s: %s -> %s\n", op.arg, old, op.format)
	return nil, false
}

// --- Font Loading -----------------------------------------------------

func (intp *Intp) loadFont(fontname string) (err error) {
	if fontname == "" {
		return fmt.Errorf("no font given, use flag -font")
	}
	intp.font, err = ttf.LoadFont(fontname)
	if err != nil {
		tracer().Errorf("cannot load font %s: %s", fontname, err)
		return err
	}
	tracer().Infof("loaded font = %s", intp.font.Fontname)
	pterm.Printf("font tables: %v\n", intp.font.TableTags())
	for _, e := range intp.font.Errors() {
		pterm.Warning.Println(e.Error())
	}
	return nil
}

// ----------------------------------------------------------------------

func getOptArg(s []string, inx int) string {
	if len(s) > inx {
		return s[inx]
	}
	return ""
}

func (op *Op) noArg() bool {
	return op.arg == ""
}

// char returns the character of an op's argument. The argument is either a
// single character, possibly composed of a base and combining marks, or a
// code point in the form "U+0041".
func (op *Op) char() (rune, error) {
	if op.noArg() {
		return 0, fmt.Errorf("%s: missing character", opNames[op.code])
	}
	if s, ok := strings.CutPrefix(strings.ToUpper(op.arg), "U+"); ok {
		n, err := strconv.ParseUint(s, 16, 32)
		if err != nil || n > utf8.MaxRune {
			return 0, fmt.Errorf("invalid code point: %s", op.arg)
		}
		return rune(n), nil
	}
	s := norm.NFC.String(op.arg)
	r, size := utf8.DecodeRuneInString(s)
	if size < len(s) {
		return 0, fmt.Errorf("%q is not a single character", op.arg)
	}
	return r, nil
}
