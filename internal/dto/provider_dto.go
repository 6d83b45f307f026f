package dto

// ProviderConfigureRequest installs an organizer-supplied API credential for
// the session. Provider may be omitted to auto-detect from the key prefix.
type ProviderConfigureRequest struct {
	APIKey   string `json:"api_key" validate:"required,min=8"`
	Provider string `json:"provider" validate:"omitempty,oneof=openai gemini"`
}

// ProviderStatusResponse reports the active scoring backend.
type ProviderStatusResponse struct {
	Configured bool   `json:"configured"`
	Provider   string `json:"provider,omitempty"`
}

// RestoreReport summarises a backup restore operation.
type RestoreReport struct {
	BackupDate    string   `json:"backup_date,omitempty"`
	RestoredFiles []string `json:"restored_files"`
}
