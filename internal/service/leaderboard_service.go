package service

// LeaderboardEntry is one row of the developer leaderboard.
type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	Name      string `json:"name"`
	Points    int    `json:"points"`
	AvatarURL string `json:"avatar_url"`
}

// LeaderboardService serves a static leaderboard snapshot. Ranking is
// presentation data; there is no scoring pipeline behind it.
type LeaderboardService struct {
	entries []LeaderboardEntry
}

// NewLeaderboardService seeds the snapshot.
func NewLeaderboardService() *LeaderboardService {
	return &LeaderboardService{
		entries: []LeaderboardEntry{
			{Rank: 1, Name: "Nova Labs", Points: 9820, AvatarURL: "/avatars/nova.png"},
			{Rank: 2, Name: "Pixel Forge", Points: 8710, AvatarURL: "/avatars/pixel.png"},
			{Rank: 3, Name: "Orbit Works", Points: 7985, AvatarURL: "/avatars/orbit.png"},
			{Rank: 4, Name: "Quanta Apps", Points: 7140, AvatarURL: "/avatars/quanta.png"},
			{Rank: 5, Name: "Drift Studio", Points: 6420, AvatarURL: "/avatars/drift.png"},
		},
	}
}

// Top returns the snapshot.
func (s *LeaderboardService) Top() []LeaderboardEntry {
	entries := make([]LeaderboardEntry, len(s.entries))
	copy(entries, s.entries)
	return entries
}
