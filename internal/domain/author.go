package domain

import (
	"cmp"
	"slices"
)

const DefaultTopAuthorsLimit = 20

// DefaultAvatarURL is the placeholder the platform serves for accounts
// without a profile picture.
const DefaultAvatarURL = "https://abs.twimg.com/sticky/default_profile_images/default_profile_normal.png"

type AuthorSummary struct {
	Handle string `json:"handle"`
	Name   string `json:"name"`
	Count  int    `json:"count"`
}

// TopAuthors counts records per author handle and returns the limit most
// frequent, most frequent first. Equal counts keep first-seen order, and the
// name is the first one seen for that handle. Records without a handle are
// not counted. A non-positive limit uses DefaultTopAuthorsLimit.
func TopAuthors(records []Record, limit int) []AuthorSummary {
	if limit <= 0 {
		limit = DefaultTopAuthorsLimit
	}

	index := make(map[string]int)
	summaries := []AuthorSummary{}
	for _, r := range records {
		if r.AuthorHandle == "" {
			continue
		}

		i, ok := index[r.AuthorHandle]
		if !ok {
			i = len(summaries)
			index[r.AuthorHandle] = i
			summaries = append(summaries, AuthorSummary{
				Handle: r.AuthorHandle,
				Name:   r.AuthorName,
			})
		}
		summaries[i].Count++
	}

	slices.SortStableFunc(summaries, func(a, b AuthorSummary) int {
		return cmp.Compare(b.Count, a.Count)
	})

	if len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries
}

// AvatarMap maps author handles to avatar URLs. Within records the last
// non-empty avatar wins; overlay entries win over records.
func AvatarMap(records []Record, overlay map[string]string) map[string]string {
	avatars := make(map[string]string)
	for _, r := range records {
		if r.AuthorHandle != "" && r.AuthorAvatar != "" {
			avatars[r.AuthorHandle] = r.AuthorAvatar
		}
	}

	for handle, avatar := range overlay {
		if handle != "" && avatar != "" {
			avatars[handle] = avatar
		}
	}

	return avatars
}
