package mcpserver

// SignalFormatContract describes the note layout the extractor understands,
// for LLM consumers that write notes meant to be extracted later.
const SignalFormatContract = `# Synthesized Signals Format

Signals are read from one authoritative block plus a few standalone sections.
Markdown heading marks (#) and <aside> wrappers are ignored, so both of these
open the same section:

` + "```" + `markdown
## Synthesized Signals (Authoritative)
Synthesized Signals
` + "```" + `

## Section headers

A line opens a section when it starts with one of:

- Summarized notes
- Work Identified
- Outcomes
- Context
- Key Signal
- Notes
- Synthesized Signals
- Risks / Open Questions
- Screenshots / Photos
- Notes (raw)
- Commitments / Ideas

Text before the first header is discarded. A repeated header replaces the
earlier section body.

## Authoritative block

Inside the synthesized signals section, sub-headers sit on lines of their own
and the bullets under them are collected:

| Sub-header       | Field        |
|------------------|--------------|
| Decision:        | decisions    |
| Action items:    | action_items |
| Blocked:         | blockers     |
| Risks            | risks        |
| Ideas:           | ideas        |

Text on the same line as a sub-header is dropped. Bullets may start with "-"
or "•". Lone emoji markers (🚦 🧩 ✨ 📝 🟩 🟪) are skipped.

## Standalone sections

- **Context** and **Notes** / **Notes (raw)** are copied verbatim.
- **Key Signal** becomes a single key signal.
- **Risks / Open Questions** fills risks only when the block listed none;
  lines starting with "!" (images) are dropped.
- **Commitments / Ideas** always adds to action items.

## Example

` + "```" + `markdown
<aside>
## Synthesized Signals (Authoritative)
🚦
Decision:
- Ship v2 on Friday
Action items:
- Dana prepares release notes
Blocked:
- Staging cluster quota
</aside>

## Context
Release readiness review for v2.

## Risks / Open Questions
- Latency regression under load
` + "```" + `
`
