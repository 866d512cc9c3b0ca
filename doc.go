/*
Package vibrant applies per-character formatting to styled text. Text is
held in paragraphs, each being a sequence of runs. A run is a piece of
text sharing one Style. Run boundaries rarely match the characters one
wants to format, e.g. the paragraph

	[The ][quick brown][ fox]
	plain  bold          plain

has three runs. To color the "u" in "quick" one needs a run that holds
exactly that "u". Paragraph.Isolate restructures the runs to provide one:

	id, _ := para.Isolate(5, 6)

splits the bold run into "q", "u" and "ick brown" and returns the ID of the
"u" run:

	[The ][q][u][ick brown][ fox]

Offsets count runes and use slice notation: (0, 3) is the first three
characters. If the range spans more than one run, the following runs are
merged into the run where the range starts, which keeps its style. Runs that
get empty by merging are removed. Isolate never changes the paragraph text
and never leaves an empty run behind. Invalid ranges are rejected with an
InvalidRangeError before anything is changed.

Runs are addressed by RunID. An ID stays valid until its run is removed,
i.e. merged into another run. IDs of removed runs are not reused, so
Paragraph.Valid detects stale IDs.

# Coloring Documents

A Document is a sequence of paragraphs, stored as YAML:

	name: chapter-1
	paragraphs:
	  - runs:
	      - text: "The "
	      - text: quick brown
	        style: {bold: true}
	      - text: " fox"

A Colorizer sweeps every paragraph from offset 0, isolates one unit after
the other and sets the color of each unit found in its ColorTable. A unit
is a rune or, with UnitGrapheme, a grapheme cluster. Color tables are CSV
files with the columns letter, r, g and b:

	letter,r,g,b
	a,230,25,75
	e,60,180,75

After coloring, every unit is a run of its own. Set Colorizer.Coalesce to
merge neighbouring runs with equal style again.

FontReplacement overwrites font name and size of all runs. Prepare turns
plain text into a document, one paragraph per line, and WritePreview
renders a document on a terminal.
*/
package vibrant
