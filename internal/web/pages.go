package web

import "github.com/a-h/templ"

const (
	PageHome       = "Home"
	PageEvents     = "Events"
	PageExecutions = "Executions"
)

var consoleCopy = []PageCopy{
	{
		Name:  PageHome,
		Title: "CoreNet",
		Summary: `Event-driven automation for network devices.

- [Events](/events) lists what the collectors saw on devices and AppFormix.
- [Executions](/executions) lists the triggers the evaluator fired in response.`,
	},
	{
		Name:  PageEvents,
		Title: "Events",
		Summary: `Events reported by the **Junos** and **AppFormix** collectors, newest first.

Each event carries a name, a type, an optional priority and the raw body
received from the device.`,
	},
	{
		Name:  PageExecutions,
		Title: "Executions",
		Summary: `Actions run by the executor after the evaluator matched one or more events.

A rule binds events to a trigger and its commands:

` + "```yaml" + `
name: interface-flap
events: [link_down]
trigger: junos_cli
commands:
  - show interfaces terse
` + "```",
	},
}

// Catalog returns the page copy keyed by page name.
func Catalog() map[string]PageCopy {
	catalog := make(map[string]PageCopy, len(consoleCopy))
	for _, page := range consoleCopy {
		catalog[page.Name] = page
	}
	return catalog
}

// PageComponent renders the shell for one console page. The view is
// computed once; the component is safe to render concurrently.
func PageComponent(page PageCopy) templ.Component {
	return pageShell(newPageView(page))
}
