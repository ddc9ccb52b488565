// Package report renders the final human-readable analysis report.
package report

import (
	"fmt"
	"strings"
	"time"

	"tripnotes/internal/models"
)

var divider = strings.Repeat("=", 50)

// Render builds the report text from the analysis outcome. Sections for
// absent data are omitted rather than rendered empty: videos without
// metadata fall back to a plain URL list, and place fields only appear
// when enrichment produced them.
func Render(videos []models.VideoInfo, summary string, places []models.PlaceInfo, elapsed time.Duration, urls []string) string {
	var b strings.Builder

	b.WriteString("=== Travel Summary ===\n")
	fmt.Fprintf(&b, "Processing time: %.2fs\n\n", elapsed.Seconds())

	if len(videos) > 0 {
		b.WriteString("Analyzed videos:\n")
		for _, v := range videos {
			fmt.Fprintf(&b, "- %s (%s)\n  %s\n", v.Title, v.Channel, v.URL)
		}
	} else if len(urls) > 0 {
		b.WriteString("Analyzed sources:\n")
		for _, u := range urls {
			fmt.Fprintf(&b, "- %s\n", u)
		}
	}

	b.WriteString("\n" + divider + "\n\n")
	b.WriteString(strings.TrimSpace(summary))
	b.WriteString("\n\n" + divider + "\n")

	if len(places) > 0 {
		b.WriteString("\n=== Place Details ===\n")
		for i, p := range places {
			fmt.Fprintf(&b, "\n%d. %s\n", i+1, p.Name)
			writePlace(&b, p)
		}
	}

	return b.String()
}

func writePlace(b *strings.Builder, p models.PlaceInfo) {
	if p.Description != nil {
		fmt.Fprintf(b, "   %s\n", *p.Description)
	}
	if p.FormattedAddress != nil {
		fmt.Fprintf(b, "   Address: %s\n", *p.FormattedAddress)
	}
	if p.Rating != nil {
		fmt.Fprintf(b, "   Rating: %.1f\n", *p.Rating)
	}
	if p.PriceLevel != nil {
		fmt.Fprintf(b, "   Price level: %s\n", strings.Repeat("$", *p.PriceLevel))
	}
	if p.Phone != nil {
		fmt.Fprintf(b, "   Phone: %s\n", *p.Phone)
	}
	if p.Website != nil {
		fmt.Fprintf(b, "   Website: %s\n", *p.Website)
	}
	if len(p.OpeningHours) > 0 {
		b.WriteString("   Opening hours:\n")
		for _, line := range p.OpeningHours {
			fmt.Fprintf(b, "     %s\n", line)
		}
	}
	if len(p.Photos) > 0 || p.BestReview != nil {
		b.WriteString("   [Photos & Reviews]\n")
		for _, photo := range p.Photos {
			fmt.Fprintf(b, "   📸 %s\n", photo.URL)
		}
		if p.BestReview != nil {
			fmt.Fprintf(b, "   ⭐ Best review: %s\n", *p.BestReview)
		}
	}
}
