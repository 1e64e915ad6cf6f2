package print

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/userdir/userdir/internal/users"
)

func NewTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 8, 1, '\t', tabwriter.TabIndent)
}

func Users(w io.Writer, list []users.User, format string) error {
	switch format {
	case "json":
		return printJSON(w, list)
	default:
		printUsersTable(w, list)
		return nil
	}
}

// UsersByID prints the by-id view ordered by ID
func UsersByID(w io.Writer, byID map[int64]users.User, format string) error {
	if format == "json" {
		return printJSON(w, byID)
	}

	ids := make([]int64, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	list := make([]users.User, 0, len(ids))
	for _, id := range ids {
		list = append(list, byID[id])
	}
	printUsersTable(w, list)
	return nil
}

func User(w io.Writer, user users.User, format string) error {
	if format == "json" {
		return printJSON(w, user)
	}
	printUsersTable(w, []users.User{user})
	return nil
}

func printJSON(w io.Writer, v interface{}) error {
	str, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(str))
	return err
}

func printUsersTable(w io.Writer, list []users.User) {
	tw := NewTabWriter(w)
	defer tw.Flush()

	fmtColumns := "%d\t%s\n"
	fmt.Fprintf(tw, "%s\t%s\n", "ID", "USERNAME")
	for _, u := range list {
		fmt.Fprintf(tw, fmtColumns, u.ID, u.Username)
	}
}
