package dict

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"example.com/textspell/pkg/logs"
	"example.com/textspell/pkg/spell"
)

var (
	// ErrPipeClosed is returned when the checker process is not running.
	ErrPipeClosed = errors.New("dict: spell process is not running")
	// ErrPipeTimeout is returned when the process does not answer in time.
	ErrPipeTimeout = errors.New("dict: spell process timed out")
)

// DefaultPipeTimeout bounds how long a query waits for the process.
const DefaultPipeTimeout = 2 * time.Second

// Pipe manages a long-lived ispell-compatible process (aspell -a,
// hunspell -a) communicating over stdio. Each query is one input line; the
// answer is a block of lines terminated by an empty line.
type Pipe struct {
	mu      sync.Mutex
	cmd     *exec.Cmd
	in      io.WriteCloser
	lines   chan string
	stop    chan struct{}
	done    chan struct{}
	timeout time.Duration
	banner  string
}

// StartPipe launches command and consumes its version banner.
func StartPipe(timeout time.Duration, command string, args ...string) (*Pipe, error) {
	if timeout <= 0 {
		timeout = DefaultPipeTimeout
	}
	cmd := exec.Command(command, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		_ = stdin.Close()
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		_ = stdin.Close()
		return nil, err
	}
	p := &Pipe{
		cmd:     cmd,
		in:      stdin,
		lines:   make(chan string, 16),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		timeout: timeout,
	}
	go p.read(cmd, stdout)
	banner, err := p.readLine()
	if err != nil {
		p.Stop()
		return nil, fmt.Errorf("read banner: %w", err)
	}
	p.banner = banner
	return p, nil
}

// Banner returns the version line printed by the process.
func (p *Pipe) Banner() string { return p.banner }

// Stop terminates the process if running.
func (p *Pipe) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Pipe) stopLocked() {
	if p.cmd == nil {
		return
	}
	close(p.stop)
	_ = p.in.Close()
	_ = p.cmd.Process.Kill()
	<-p.done
	p.cmd = nil
	p.in = nil
}

// read forwards output lines until EOF or Stop, then reaps the process.
// Wait must not run before reading stops since it closes stdout.
func (p *Pipe) read(cmd *exec.Cmd, stdout io.Reader) {
	defer close(p.done)
	sc := bufio.NewScanner(stdout)
scan:
	for sc.Scan() {
		select {
		case p.lines <- sc.Text():
		case <-p.stop:
			break scan
		}
	}
	close(p.lines)
	_ = cmd.Wait()
}

func (p *Pipe) readLine() (string, error) {
	select {
	case line, ok := <-p.lines:
		if !ok {
			return "", io.ErrUnexpectedEOF
		}
		return line, nil
	case <-time.After(p.timeout):
		return "", ErrPipeTimeout
	}
}

// Query sends one line and returns the response block without its
// terminating empty line.
func (p *Pipe) Query(line string) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cmd == nil {
		return nil, ErrPipeClosed
	}
	if _, err := io.WriteString(p.in, line+"\n"); err != nil {
		p.stopLocked()
		return nil, err
	}
	var out []string
	for {
		resp, err := p.readLine()
		if err != nil {
			// A late answer would be read as the reply to the next query.
			p.stopLocked()
			return out, err
		}
		if resp == "" {
			return out, nil
		}
		out = append(out, resp)
	}
}

// Send writes a command line that produces no response.
func (p *Pipe) Send(line string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cmd == nil {
		return ErrPipeClosed
	}
	_, err := io.WriteString(p.in, line+"\n")
	return err
}

// PipeDictionary is a spell.Dictionary served by an ispell-compatible
// process.
type PipeDictionary struct {
	code string
	pipe *Pipe
	log  *logs.Logger
}

var _ spell.Dictionary = (*PipeDictionary)(nil)

// NewPipeDictionary wraps a running pipe.
func NewPipeDictionary(code string, p *Pipe, log *logs.Logger) *PipeDictionary {
	return &PipeDictionary{code: code, pipe: p, log: log}
}

// result is one parsed ispell answer line.
type result struct {
	ok          bool
	suggestions []string
}

// parseResult parses "*", "+ root", "-", "& word n off: a, b" and
// "# word off".
func parseResult(line string) result {
	if line == "" {
		return result{ok: true}
	}
	switch line[0] {
	case '*', '+', '-':
		return result{ok: true}
	case '&', '?':
		var sugg []string
		if i := strings.Index(line, ":"); i >= 0 {
			for _, s := range strings.Split(line[i+1:], ",") {
				if s = strings.TrimSpace(s); s != "" {
					sugg = append(sugg, s)
				}
			}
		}
		return result{suggestions: sugg}
	}
	return result{}
}

func (d *PipeDictionary) lookup(word string) (result, error) {
	w := normalize(word)
	if w == "" {
		return result{ok: true}, nil
	}
	// '^' stops the line from being read as a command.
	lines, err := d.pipe.Query("^" + w)
	if err != nil {
		d.log.Event("dict.pipe_error", map[string]any{"word": w, "error": err.Error()})
		return result{ok: true}, err
	}
	if len(lines) == 0 {
		return result{ok: true}, nil
	}
	return parseResult(lines[0]), nil
}

// Check reports whether word is spelled correctly. Words the process
// cannot answer for are treated as correct.
func (d *PipeDictionary) Check(word string) bool {
	r, _ := d.lookup(word)
	return r.ok
}

// Suggest returns the process's suggestions for word.
func (d *PipeDictionary) Suggest(word string) []string {
	r, _ := d.lookup(word)
	return r.suggestions
}

// Add inserts word into the personal dictionary and saves it.
func (d *PipeDictionary) Add(word string) error {
	if err := d.pipe.Send("*" + normalize(word)); err != nil {
		return err
	}
	return d.pipe.Send("#")
}

// Ignore accepts word for this session.
func (d *PipeDictionary) Ignore(word string) {
	_ = d.pipe.Send("@" + normalize(word))
}

// StoreReplacement records the correction with aspell's $$ra command.
func (d *PipeDictionary) StoreReplacement(bad, good string) {
	_ = d.pipe.Send("$$ra " + normalize(bad) + "," + normalize(good))
}

// Close stops the process.
func (d *PipeDictionary) Close() { d.pipe.Stop() }

// PipeBroker opens PipeDictionaries by starting one process per language.
type PipeBroker struct {
	command string
	args    []string
	langs   []string
	timeout time.Duration
	log     *logs.Logger

	mu   sync.Mutex
	open map[string]*PipeDictionary
}

var _ spell.Provider = (*PipeBroker)(nil)

// PipeOption configures a PipeBroker.
type PipeOption func(*PipeBroker)

// WithPipeArgs adds arguments before the "-d <code> -a" arguments.
func WithPipeArgs(args ...string) PipeOption {
	return func(b *PipeBroker) { b.args = append(b.args, args...) }
}

// WithPipeLanguages fixes the language list instead of asking the process.
func WithPipeLanguages(codes ...string) PipeOption {
	return func(b *PipeBroker) { b.langs = codes }
}

// WithPipeTimeout sets the per-query timeout.
func WithPipeTimeout(d time.Duration) PipeOption { return func(b *PipeBroker) { b.timeout = d } }

// WithPipeLogger sets the event logger.
func WithPipeLogger(l *logs.Logger) PipeOption { return func(b *PipeBroker) { b.log = l } }

// NewPipeBroker creates a broker for command, typically "aspell" or
// "hunspell".
func NewPipeBroker(command string, opts ...PipeOption) *PipeBroker {
	b := &PipeBroker{command: command, timeout: DefaultPipeTimeout, open: map[string]*PipeDictionary{}}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Languages returns the configured languages, or for aspell the output of
// "aspell dicts". It falls back to "en".
func (b *PipeBroker) Languages() []string {
	if len(b.langs) > 0 {
		return b.langs
	}
	if strings.HasPrefix(filepath.Base(b.command), "aspell") {
		if out, err := exec.Command(b.command, "dicts").Output(); err == nil {
			if codes := strings.Fields(string(out)); len(codes) > 0 {
				return codes
			}
		}
	}
	return []string{EmbeddedLanguage}
}

// Request starts (or reuses) the process for code.
func (b *PipeBroker) Request(code string) (spell.Dictionary, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if d, ok := b.open[code]; ok {
		return d, nil
	}
	args := append(append([]string(nil), b.args...), "-d", code, "-a")
	p, err := StartPipe(b.timeout, b.command, args...)
	if err != nil {
		return nil, fmt.Errorf("start %s for %q: %w", b.command, code, err)
	}
	b.log.Event("dict.pipe_start", map[string]any{"command": b.command, "language": code, "banner": p.Banner()})
	d := NewPipeDictionary(code, p, b.log)
	b.open[code] = d
	return d, nil
}

// Close stops every process the broker started.
func (b *PipeBroker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for code, d := range b.open {
		d.Close()
		delete(b.open, code)
	}
}
