package docs

var topics = []Topic{
	{
		Name:    "quickstart",
		Title:   "Quick Start",
		Summary: "Getting started with inkwell",
		Content: topicQuickstart,
	},
	{
		Name:    "config",
		Title:   "Configuration Reference",
		Summary: "Config file schema, fields, and defaults",
		Content: topicConfig,
	},
	{
		Name:    "scheduling",
		Title:   "Scheduling Model",
		Summary: "The cooldown gate, topic rotation, and persisted records",
		Content: topicScheduling,
	},
}

const topicQuickstart = `
QUICK START

inkwell writes one blog post per scheduled invocation: it picks the next
topic from a rotation, asks the Anthropic API for a post body, and saves
markdown with YAML frontmatter into your site's content directory.

  1. inkwell init
     Creates .inkwell/config.yaml, .inkwell/data/, and content/posts/.

  2. Edit .inkwell/config.yaml
     Fill in your topic list. Each topic needs a title and an 'about'
     line describing what the post should cover.

  3. export ANTHROPIC_API_KEY=sk-ant-...

  4. inkwell generate --dry-run
     Shows the upcoming topic and the gate decision without writing
     anything or calling the API.

  5. Schedule it
     Point a cron job or CI workflow at 'inkwell generate'. The cooldown
     gate makes over-frequent scheduling harmless: extra invocations
     exit with code 2 and do nothing.

Commands:

  init        scaffold a new .inkwell/ directory
  check       evaluate the gate only (exit 0 = proceed, 2 = skip)
  generate    run the full pipeline
  status      show the rotation and gate state and recent runs
  doctor      run environment preflight checks
  docs        this documentation
`

const topicConfig = `
CONFIGURATION REFERENCE

inkwell loads .inkwell/config.yaml from the nearest ancestor directory,
so commands work from anywhere inside the project.

Top-level fields:

  name          Required. Site name, used only for display.
  content-dir   Where generated markdown lands. Default: content/posts
  data-dir      Where persisted records live. Default: .inkwell/data
  cooldown      Minimum time between generated posts, as a Go duration
                string ("36h", "90m"). Default: 36h
  schedule      Alternative to cooldown: a cron expression ("0 6 * * *",
                "@daily"). A run is due once the schedule has fired since
                the last run. Mutually exclusive with cooldown.

topics (required, at least one):

  - title       Required, unique. Also becomes the post's slug and
                frontmatter title.
    about       Required. What the generated post should cover; also
                used as the frontmatter description.
    tags        Optional list, copied into frontmatter.

model:

  name          Anthropic model name. Default: claude-3-7-sonnet-20250219
  max-tokens    Response budget. Default: 2500
  timeout       Request timeout in seconds. Default: 60

publish (optional):

  enabled       Also commit each post to a GitHub repository.
  owner, repo   Required when enabled.
  branch        Default: main
  dir           Path inside the repo. Default: content-dir

Secrets are environment-only: ANTHROPIC_API_KEY for generation,
GITHUB_TOKEN when publish is enabled. They are never read from the
config file.
`

const topicScheduling = `
SCHEDULING MODEL

Two small persisted records in data-dir drive everything.

The gate (lastrun.json) stores the last time a run was permitted, in
milliseconds since the epoch. A check is granted when the record is
missing (first run always proceeds) or when the cooldown has elapsed —
or, in schedule mode, when the cron expression has fired since the last
run. On a grant the record is overwritten with the current time BEFORE
the pipeline continues: if generation then crashes, the topic's window
is spent and no retry happens until the next window. That trade was
chosen deliberately — a missing post is recoverable by hand, a double
post is publicly visible.

The rotation (cursor.json) stores the index of the topic most recently
handed out. Each run takes the next index, wrapping at the end of the
list, and persists the advance before using the topic. With N topics,
every topic appears exactly once per N runs, in list order.

Both records degrade safely: a missing, empty, or unparseable file (or
an out-of-range index) is treated as the initial state, logged at warn
level, and never crashes a run. Deleting cursor.json restarts the
rotation; deleting lastrun.json lets the next invocation run
immediately.

One invocation at a time is assumed. The read-modify-write on each
record is not locked, so two simultaneous invocations could duplicate a
grant or skip a topic. With a 36-hour cooldown and a cron-driven
deployment that situation does not arise; if your scheduler can overlap
runs, serialize them externally.

A forced run (generate --force) bypasses the gate and leaves
lastrun.json untouched, so forcing a post out does not delay the next
scheduled one.
`
