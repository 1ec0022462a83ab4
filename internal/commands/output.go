package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	apperrors "servicehub/pkg/errors"
	"servicehub/pkg/model"
)

// describe renders err for a terminal, one violation per line.
func describe(err error) string {
	appErr := apperrors.AsAppError(err)
	var b strings.Builder
	b.WriteString("error: ")
	b.WriteString(appErr.Message)
	for _, v := range appErr.Violations {
		b.WriteString("\n  - ")
		b.WriteString(v)
	}
	return b.String()
}

func printUser(w io.Writer, u *model.User) {
	fmt.Fprintf(w, "%s <%s> #%d %s\n", u.Name, u.Email, u.ID, u.Role)
}

func printProviders(w io.Writer, providers []model.ServiceProvider) {
	if len(providers) == 0 {
		fmt.Fprintln(w, "no providers found")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSERVICES\tLOCATION\tFARE\tRATING")
	for _, p := range providers {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%.1f\n",
			p.ID, p.Name, strings.Join(p.Services, ","), p.Location, formatFare(p.Fare), p.Rating)
	}
	tw.Flush()
}

func printBookings(w io.Writer, bookings []model.Booking) {
	if len(bookings) == 0 {
		fmt.Fprintln(w, "no bookings")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tSERVICE\tSTATUS\tFARE\tWITH")
	for _, b := range bookings {
		with := b.ProviderName
		if with == "" {
			with = b.CustomerName
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			b.ID, b.ScheduledDate, b.ServiceType, b.Status, formatFare(b.Fare), with)
	}
	tw.Flush()
}

func printBooking(w io.Writer, b *model.Booking) {
	fmt.Fprintf(w, "booking #%d %s: %s on %s for %s\n",
		b.ID, b.Status, b.ServiceType, b.ScheduledDate, formatFare(b.Fare))
}

func printProfile(w io.Writer, p *model.ServiceProvider) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "id\t%d\n", p.ID)
	fmt.Fprintf(tw, "name\t%s\n", p.Name)
	fmt.Fprintf(tw, "email\t%s\n", p.Email)
	fmt.Fprintf(tw, "phone\t%s\n", p.Phone)
	fmt.Fprintf(tw, "location\t%s\n", p.Location)
	fmt.Fprintf(tw, "services\t%s\n", strings.Join(p.Services, ", "))
	fmt.Fprintf(tw, "fare\t%s\n", formatFare(p.Fare))
	fmt.Fprintf(tw, "description\t%s\n", p.Description)
	fmt.Fprintf(tw, "rating\t%.1f\n", p.Rating)
	fmt.Fprintf(tw, "completed jobs\t%d\n", p.CompletedJobs)
	tw.Flush()
}

func printStats(w io.Writer, s model.ProviderStats) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "total bookings\t%d\n", s.TotalBookings)
	fmt.Fprintf(tw, "pending\t%d\n", s.PendingBookings)
	fmt.Fprintf(tw, "completed\t%d\n", s.CompletedJobs)
	fmt.Fprintf(tw, "rating\t%.1f\n", s.Rating)
	tw.Flush()
}

func formatFare(f float64) string {
	return "$" + strconv.FormatFloat(f, 'f', -1, 64)
}
