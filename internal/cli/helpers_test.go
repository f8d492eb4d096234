package cli_test

// Note fixtures shared by the command tests. Statuses and scores are chosen
// per the eligibility rules: fleeting needs a score at or above 0.6 plus an
// outbound link, literature needs a claim or quote, permanent needs a score
// at or above 0.7 plus two tags.

const eligibleFleetingNote = `---
type: fleeting
status: captured
created: 2026-08-01T10:00:00Z
quality_score: 0.8
---

# Linked idea

Relates to [[another-note]].
`

const unscoredFleetingNote = `---
type: fleeting
status: captured
created: 2026-08-01T10:00:00Z
---

# Unscored idea

Relates to [[another-note]].
`

const eligibleLiteratureNote = `---
type: literature
status: triaged
created: 2026-08-02T09:00:00Z
claims:
    - Spacing improves retention
---

# Reading notes
`

const eligiblePermanentNote = `---
type: permanent
status: captured
created: 2026-08-03T08:00:00Z
quality_score: 0.9
tags:
    - pkm
    - memory
---

# Durable claim
`

const publishedNote = `---
type: permanent
status: published
created: 2026-07-01T08:00:00Z
quality_score: 0.9
tags:
    - pkm
    - memory
---

# Already published
`

const corruptNote = `no frontmatter here at all
`
