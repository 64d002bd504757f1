package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/dreem/pkg/chat"
	"tableflip.dev/dreem/pkg/journal"
	"tableflip.dev/dreem/pkg/timeutil"
)

const layoutLong = "January 2, 2006"

type PrettyPrint struct {
	Wrap int
}

func (pp *PrettyPrint) wrap() int {
	if pp.Wrap <= 0 {
		return 78
	}
	return pp.Wrap
}

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

// Items prints the reconciled journal list, one block per day, drafts marked.
func (pp *PrettyPrint) Items(items ...journal.DisplayItem) {
	if len(items) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}

	d := color.New(color.Bold)
	m := color.New(color.Faint)
	t := color.New()
	dr := color.New(color.FgHiYellow, color.Italic)

	for _, item := range items {
		_, _ = d.Print(pp.itemDate(item))
		if item.IsDraft {
			_, _ = dr.Print("  draft")
		}
		fmt.Println("")
		if item.MoonPhase != "" {
			_, _ = m.Printf("%s %s\n", item.MoonPhaseEmoji, item.MoonPhase)
		}
		_, _ = t.Printf("%s\n\n", preview(item.Text))
	}
}

func (pp *PrettyPrint) itemDate(item journal.DisplayItem) string {
	if when, err := timeutil.ParseDateKey(item.DateKey); err == nil {
		return when.Format(layoutLong)
	}
	return item.DateKey
}

// Day prints one day's full content, wrapping the analysis for the terminal.
func (pp *PrettyPrint) Day(item journal.DisplayItem) {
	pp.Title(pp.itemDate(item))
	m := color.New(color.Faint)
	if item.MoonPhase != "" {
		_, _ = m.Printf("%s %s\n", item.MoonPhaseEmoji, item.MoonPhase)
	}
	if item.IsDraft {
		_, _ = color.New(color.FgHiYellow, color.Italic).Println("draft, not yet saved")
	}
	fmt.Println("")
	fmt.Println(wordwrap.String(item.Text, pp.wrap()))
	if item.AIAnalysis != "" {
		fmt.Println("")
		pp.Title("Luna's analysis")
		fmt.Println(wordwrap.String(item.AIAnalysis, pp.wrap()))
	}
}

// Chats prints the chat index, most recently touched first.
func (pp *PrettyPrint) Chats(chats ...chat.Chat) {
	if len(chats) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}

	now := time.Now()
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("ID", "TITLE", "MESSAGES", "UPDATED")
	for _, c := range chats {
		tbl.AddRow(c.ID, c.Title, fmt.Sprintf("%d", len(c.Messages)), timeutil.Relative(c.UpdatedAt.Time, now))
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// Transcript prints a chat's messages in order.
func (pp *PrettyPrint) Transcript(c chat.Chat) {
	pp.Title(c.Title)
	fmt.Println("")

	user := color.New(color.Bold, color.FgCyan)
	assistant := color.New(color.Bold, color.FgMagenta)

	for _, msg := range c.Messages {
		role := assistant
		label := "luna"
		if msg.Role == chat.RoleUser {
			role = user
			label = "you"
		}
		_, _ = role.Printf("%s ", label)
		_, _ = color.New(color.Faint).Printf("%s\n", msg.Timestamp.Local().Format("Jan 2 15:04"))
		fmt.Println(wordwrap.String(msg.Content, pp.wrap()))
		fmt.Println("")
	}
}

func preview(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return color.New(color.Faint, color.Italic).Sprint("no content yet")
	}
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	runes := []rune(text)
	if len(runes) > 72 {
		return string(runes[:72]) + "…"
	}
	return text
}
