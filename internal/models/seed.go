package models

// SeedFile is the episodes.yaml layout consumed by the seed command.
type SeedFile struct {
	Episodes []SeedEpisode `yaml:"episodes"`
}

// SeedEpisode declares one episode and its diarization-label speaker map.
type SeedEpisode struct {
	EpisodeNumber int           `yaml:"episode_number"`
	Title         string        `yaml:"title"`
	FileName      string        `yaml:"file_name"`
	DatePublished string        `yaml:"date_published"`
	Speakers      []SeedSpeaker `yaml:"speakers"`
}

// SeedSpeaker binds a diarization label (speaker number) to a display name.
type SeedSpeaker struct {
	SpeakerNumber string `yaml:"speaker_number"`
	Name          string `yaml:"name"`
}
