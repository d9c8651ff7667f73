package mcpserver

// ContentFormat describes how documents are laid out in the content store
// and how titles are derived from them.
const ContentFormat = `# UI Engineering Notes Content Format

Documents are Markdown files grouped in two categories.

| Category | Directory   | URL             |
|----------|-------------|-----------------|
| log      | ` + "`logs/`" + `     | /logs/{slug}     |
| snippet  | ` + "`snippets/`" + ` | /snippets/{slug} |

## Slugs

- The slug is the file name without ` + "`.md`" + `.
- Log slugs are dates in ` + "`YYYY-MM-DD`" + ` form and are shown as "March 5, 2024".
- Snippet slugs are free-form (letters, digits, ` + "`-`" + `, ` + "`_`" + `, ` + "`.`" + `).
- Listings are ordered by slug, newest (lexicographically greatest) first.

## Titles

An optional YAML frontmatter block with a ` + "`title`" + ` field wins. Otherwise the
first line that matches, in this order, becomes the title:

1. A level-3 heading: ` + "`### Title`" + `
2. A level-2 heading, unless it is a section label such as "Summary" or "Example"
3. A level-1 heading: ` + "`# Engineering Note: Topic`" + ` yields "Topic"
4. The first sentence of a plain line, cut to 60 characters

Date headings (` + "`# 2024-03-05`" + `) and "generated at" lines are never titles.
Backticks are stripped from headings. Documents with no usable line
are titled "Untitled Log" or "Untitled Snippet".

## Example

` + "```" + `markdown
# 2024-03-05

### Debouncing resize observers

Summary of what changed today.
` + "```" + `
`
