package tracking

import (
	"fmt"

	"github.com/julianstephens/learnnova/internal/cli"
	"github.com/julianstephens/learnnova/internal/constants"
	"github.com/julianstephens/learnnova/internal/errors"
	"github.com/julianstephens/learnnova/internal/validation"
)

type LinkCmd struct {
	Add  LinkAddCmd  `cmd:"" help:"Save a lecture link."`
	Rm   LinkRmCmd   `cmd:"" help:"Remove a saved lecture."`
	List LinkListCmd `cmd:"" help:"List saved lectures." default:"1"`
}

type LinkAddCmd struct {
	Title string `arg:"" help:"Lecture title."`
	URL   string `arg:"" help:"Lecture URL (http or https)."`
}

func (c *LinkAddCmd) Run(ctx *cli.Context) error {
	title, url, err := validation.Link(c.Title, c.URL)
	if err != nil {
		return err
	}
	if err := ctx.Hydrate(); err != nil {
		return err
	}

	link, ok := ctx.Store.AddYoutubeLink(title, url)
	if !ok {
		return fmt.Errorf("failed to save lecture %q", title)
	}
	ctx.Printf("✓ Saved lecture: %s (ID: %s)\n", link.Title, link.ID)
	return nil
}

type LinkRmCmd struct {
	ID string `arg:"" help:"Lecture ID."`
}

func (c *LinkRmCmd) Run(ctx *cli.Context) error {
	if err := ctx.Hydrate(); err != nil {
		return err
	}

	var title string
	for _, l := range ctx.Store.YoutubeLinks() {
		if l.ID == c.ID {
			title = l.Title
			break
		}
	}
	if title == "" || !ctx.Store.RemoveYoutubeLink(c.ID) {
		return errors.Invalid("lecture not found: %s", c.ID)
	}
	ctx.Printf("✓ Removed lecture: %s\n", title)
	return nil
}

type LinkListCmd struct{}

func (c *LinkListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Hydrate(); err != nil {
		return err
	}
	links := ctx.Store.YoutubeLinks()
	if len(links) == 0 {
		ctx.Println("No lectures saved yet.")
		return nil
	}

	for _, l := range links {
		added := l.AddedAt.In(ctx.Store.Now().Location()).Format(constants.DateFormat)
		ctx.Printf("%s  %s  %s\n    %s\n", l.ID, added, l.Title, l.URL)
	}
	return nil
}
