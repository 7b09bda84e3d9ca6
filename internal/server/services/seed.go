package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/learningjournal/internal/dbx"
	"github.com/dmitrijs2005/learningjournal/internal/server/models"
	"github.com/dmitrijs2005/learningjournal/internal/server/repositories/repomanager"
)

func sampleEntries() []*models.Entry {
	d := time.Date(2016, 1, 31, 0, 0, 0, 0, time.UTC)
	fifteen := int64(15)

	return []*models.Entry{
		{
			Title:     "The best day I’ve ever had",
			Date:      d,
			TimeSpent: &fifteen,
			Learned: "Lorem ipsum dolor sit amet, consectetur adipiscing elit. Nunc ut rhoncus felis, vel tincidunt neque.\n" +
				"Cras egestas ac ipsum in posuere. Fusce suscipit, libero id malesuada placerat, orci velit semper metus, " +
				"quis pulvinar sem nunc vel augue. In ornare tempor metus, sit amet congue justo porta et. Etiam pretium, " +
				"sapien non fermentum consequat, dolor augue gravida lacus, non accumsan. Vestibulum ut metus eleifend, " +
				"malesuada nisl at, scelerisque sapien.",
			Resources: "Lorem ipsum dolor sit amet\n" +
				"Cras accumsan cursus ante, non dapibus tempor\n" +
				"Nunc ut rhoncus felis, vel tincidunt neque\n" +
				"Ipsum dolor sit amet",
			Tags: "best latin long-day",
		},
		{Title: "The absolute worst day I’ve ever had", Date: d, Tags: "long-day bad"},
		{Title: "That time at the mall", Date: d},
		{Title: "Dude, where's my car", Date: d, Tags: "bad"},
	}
}

// Seed inserts the sample entries shown on a freshly reset journal.
func Seed(ctx context.Context, db dbx.Conn, m repomanager.RepositoryManager) error {
	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := m.Entries(tx)
		for _, e := range sampleEntries() {
			if _, err := insertWithSlug(ctx, repo, e); err != nil {
				return fmt.Errorf("seed %q: %w", e.Title, err)
			}
		}
		return nil
	})
}
