package components

import "github.com/kerbaras/bookshelf/pkg/app/styles"

type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeSuccess
	NoticeError
)

// Notice is the one-line feedback shown under a screen's header.
type Notice struct {
	Text  string
	Level NoticeLevel
}

func (n *Notice) Set(level NoticeLevel, text string) {
	n.Level = level
	n.Text = text
}

func (n *Notice) Clear() {
	n.Text = ""
}

func (n Notice) View() string {
	if n.Text == "" {
		return ""
	}
	switch n.Level {
	case NoticeSuccess:
		return styles.StatusSuccess.Render(n.Text) + "\n\n"
	case NoticeError:
		return styles.StatusError.Render(n.Text) + "\n\n"
	}
	return styles.StatusInfo.Render(n.Text) + "\n\n"
}
