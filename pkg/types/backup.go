package types

// BackupRecord is one row of the backup log. Verified, VerificationDate,
// CloudURL and CloudProvider are attached after creation; everything else is
// immutable.
type BackupRecord struct {
	BackupID         int64
	Filename         string
	Location         string
	Size             int64
	Timestamp        string
	Checksum         string
	Compressed       bool
	Metadata         string // serialized sidecar JSON
	Verified         bool
	VerificationDate string
	CloudURL         string
	CloudProvider    string
}

// BackupRecordFromRow builds a BackupRecord from a generic row.
func BackupRecordFromRow(r Row) *BackupRecord {
	return &BackupRecord{
		BackupID:         r.Int("backup_id"),
		Filename:         r.String("filename"),
		Location:         r.String("location"),
		Size:             r.Int("size"),
		Timestamp:        r.String("timestamp"),
		Checksum:         r.String("checksum"),
		Compressed:       r.Bool("compressed"),
		Metadata:         r.String("metadata"),
		Verified:         r.Bool("verified"),
		VerificationDate: r.String("verification_date"),
		CloudURL:         r.String("cloud_url"),
		CloudProvider:    r.String("cloud_provider"),
	}
}
