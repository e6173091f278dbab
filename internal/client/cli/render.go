package cli

import (
	"fmt"
	"io"

	"github.com/vkuzmenko/classmate/internal/client/controller"
)

// renderList writes a list screen's terminal state. A Ready state with no
// items prints the neutral empty message; Errored prints the failure plus a
// retry hint. The two are never conflated.
func renderList[T any](w io.Writer, st controller.State[T], empty string, row func(io.Writer, T)) {
	switch st.Phase {
	case controller.Errored:
		fmt.Fprintf(w, "Error: %s\n", st.Message)
		fmt.Fprintln(w, "Run the command again to retry.")
	case controller.Ready:
		if len(st.Items) == 0 {
			fmt.Fprintln(w, empty)
			return
		}
		for _, item := range st.Items {
			row(w, item)
		}
	default:
		fmt.Fprintln(w, "Loading...")
	}
}
