package cli

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/subtrack-app/subtrack/internal/model"
	"github.com/subtrack-app/subtrack/internal/stats"
)

// FormatAmount renders a numeric amount with its currency code.
func FormatAmount(amount float64, currency string) string {
	if currency == "" {
		return fmt.Sprintf("%.2f", amount)
	}
	return fmt.Sprintf("%.2f %s", amount, currency)
}

// PrintSubscriptionsTable renders the subscription list as a table.
func PrintSubscriptionsTable(w io.Writer, subscriptions []model.Subscription, currency string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"Name", "Cost", "Frequency", "Monthly", "Renewal", "Category"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Cost", Align: text.AlignRight},
		{Name: "Monthly", Align: text.AlignRight},
	})

	for i := range subscriptions {
		sub := &subscriptions[i]
		t.AppendRow(table.Row{
			sub.Name,
			FormatAmount(sub.Cost, currency),
			string(sub.Frequency),
			FormatAmount(sub.MonthlyCost(), currency),
			sub.RenewalDate.Format("2006-01-02"),
			CategoryStyle(sub.Color).Render(sub.Category),
		})
	}

	t.Render()
}

// PrintStats renders the dashboard snapshot: totals, category breakdown,
// and upcoming renewals.
func PrintStats(w io.Writer, s stats.Stats, currency string) {
	fmt.Fprintln(w, TitleStyle.Render(ChartIcon+" Subscription statistics"))
	fmt.Fprintf(w, "  Active subscriptions: %s\n", BoldStyle.Render(fmt.Sprintf("%d", s.ActiveSubscriptions)))
	fmt.Fprintf(w, "  Monthly total:        %s\n", BoldStyle.Render(FormatAmount(s.TotalMonthly, currency)))
	fmt.Fprintf(w, "  Annual total:         %s\n", BoldStyle.Render(FormatAmount(s.TotalAnnual, currency)))

	if len(s.CategoryBreakdown) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, BoldStyle.Render("  By category (monthly):"))

		categories := make([]string, 0, len(s.CategoryBreakdown))
		for category := range s.CategoryBreakdown {
			categories = append(categories, category)
		}
		sort.Slice(categories, func(i, j int) bool {
			return s.CategoryBreakdown[categories[i]] > s.CategoryBreakdown[categories[j]]
		})

		for _, category := range categories {
			style := CategoryStyle(model.CategoryColor(category))
			fmt.Fprintf(w, "    %s  %s\n",
				style.Render(fmt.Sprintf("%-15s", category)),
				FormatAmount(s.CategoryBreakdown[category], currency))
		}
	}

	if len(s.UpcomingRenewals) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, BoldStyle.Render(fmt.Sprintf("  %s Renewing within %d days:", CalendarIcon, stats.DefaultUpcomingWindowDays)))
		PrintUpcoming(w, s.UpcomingRenewals, currency)
	}
}

// PrintUpcoming renders upcoming renewals, soonest first.
func PrintUpcoming(w io.Writer, upcoming []model.Subscription, currency string) {
	for i := range upcoming {
		sub := &upcoming[i]
		fmt.Fprintf(w, "    %s  %s (%s)\n",
			sub.RenewalDate.Format("2006-01-02"),
			sub.Name,
			FormatAmount(sub.Cost, currency))
	}
}

// PrintNotifications renders delivered notifications.
func PrintNotifications(w io.Writer, notifications []model.Notification) {
	for i := range notifications {
		n := &notifications[i]
		fmt.Fprintf(w, "%s %s\n", BellIcon, BoldStyle.Render(n.Title))
		if n.Body != "" {
			fmt.Fprintf(w, "   %s\n", n.Body)
		}
		fmt.Fprintf(w, "   %s\n", SubtleStyle.Render("due "+n.TriggerAt.Format(time.RFC1123)))
	}
}
