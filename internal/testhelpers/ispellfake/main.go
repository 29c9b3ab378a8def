package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ispellfake simulates the subset of the `ispell -a` protocol that
// aspell and hunspell share. It prints a banner, then answers each input
// line with one result line and an empty line:
//
//	^word    check word: "*", "+ root", "& word n 0: a, b" or "# word 0"
//	*word    add to the personal dictionary
//	@word    accept for this session
//	#        save the personal dictionary (to ISPELLFAKE_PERSONAL)
//	$$ra a,b store a replacement
//
// ISPELLFAKE_MODE=crash exits right after the banner and
// ISPELLFAKE_MODE=flood writes lines until stdout closes. ISPELLFAKE_DELAY_MS
// delays every answer. "-d missing" fails like an unknown dictionary.
func main() {
	for i, a := range os.Args {
		if a == "-d" && i+1 < len(os.Args) && os.Args[i+1] == "missing" {
			fmt.Fprintln(os.Stderr, "Error: No word lists can be found for the language \"missing\".")
			os.Exit(1)
		}
	}
	fmt.Println("@(#) International Ispell Version 3.1.20 (but really ispellfake 0.1)")
	switch os.Getenv("ISPELLFAKE_MODE") {
	case "crash":
		return
	case "flood":
		for i := 0; ; i++ {
			if _, err := fmt.Printf("& flood %d 0: a\n", i); err != nil {
				return
			}
		}
	}
	var delay time.Duration
	if v := os.Getenv("ISPELLFAKE_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			delay = time.Duration(n) * time.Millisecond
		}
	}

	known := map[string]bool{"good": true, "hello": true, "cat": true, "sat": true, "the": true}
	var personal []string
	replacements := map[string][]string{}

	in := bufio.NewScanner(os.Stdin)
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	for in.Scan() {
		line := in.Text()
		switch {
		case strings.HasPrefix(line, "$$ra "):
			if bad, good, ok := strings.Cut(line[5:], ","); ok {
				replacements[strings.ToLower(bad)] = append([]string{good}, replacements[strings.ToLower(bad)]...)
			}
			continue
		case strings.HasPrefix(line, "*"):
			w := strings.ToLower(line[1:])
			known[w] = true
			personal = append(personal, w)
			continue
		case strings.HasPrefix(line, "@"):
			known[strings.ToLower(line[1:])] = true
			continue
		case line == "#":
			if path := os.Getenv("ISPELLFAKE_PERSONAL"); path != "" {
				_ = os.WriteFile(path, []byte(strings.Join(personal, "\n")+"\n"), 0o644)
			}
			continue
		case line == "!":
			continue
		}
		w := strings.TrimSpace(strings.TrimPrefix(line, "^"))
		if delay > 0 {
			time.Sleep(delay)
		}
		fmt.Fprintln(out, answer(w, known, replacements))
		fmt.Fprintln(out)
		_ = out.Flush()
	}
}

func answer(w string, known map[string]bool, replacements map[string][]string) string {
	lw := strings.ToLower(w)
	switch {
	case w == "":
		return "*"
	case known[lw]:
		return "*"
	case lw == "rooted":
		return "+ root"
	case strings.ContainsAny(w, "0123456789"):
		return fmt.Sprintf("# %s 0", w)
	}
	sugg := append([]string(nil), replacements[lw]...)
	if lw == "teh" {
		sugg = append(sugg, "the", "ten")
	}
	if len(sugg) == 0 {
		return fmt.Sprintf("# %s 0", w)
	}
	return fmt.Sprintf("& %s %d 0: %s", w, len(sugg), strings.Join(sugg, ", "))
}
