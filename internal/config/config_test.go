package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr bool
		check   func(*Config) bool
	}{
		{
			name:    "uses defaults when nothing is set",
			envVars: map[string]string{},
			wantErr: false,
			check: func(c *Config) bool {
				return c.Host == "0.0.0.0" &&
					c.Port == 8000 &&
					c.Environment == "development" &&
					c.UploadDir == "temp_uploads" &&
					c.FaceProvider == "deepface" &&
					c.FaceModel == "SFace" &&
					c.EnforceDetection &&
					!c.KeepFailedUploads &&
					c.DeepFaceRetryCount == 0 &&
					c.DeepFaceTimeout == 60*time.Second &&
					c.MaxConcurrentComparisons == 0
			},
		},
		{
			name: "reads overrides",
			envVars: map[string]string{
				"PORT":                       "9090",
				"ENV":                        "production",
				"UPLOAD_DIR":                 "/tmp/scratch",
				"FACE_PROVIDER":              "rekognition",
				"AWS_REGION":                 "eu-west-1",
				"KEEP_FAILED_UPLOADS":        "true",
				"MAX_CONCURRENT_COMPARISONS": "4",
				"COMPARE_TIMEOUT":            "15s",
			},
			wantErr: false,
			check: func(c *Config) bool {
				return c.Port == 9090 &&
					c.IsProduction() &&
					c.UploadDir == "/tmp/scratch" &&
					c.FaceProvider == "rekognition" &&
					c.AWSRegion == "eu-west-1" &&
					c.KeepFailedUploads &&
					c.MaxConcurrentComparisons == 4 &&
					c.CompareTimeout == 15*time.Second
			},
		},
		{
			name:    "fails on unknown provider",
			envVars: map[string]string{"FACE_PROVIDER": "opencv"},
			wantErr: true,
		},
		{
			name:    "fails on invalid port",
			envVars: map[string]string{"PORT": "0"},
			wantErr: true,
		},
		{
			name:    "fails on malformed duration",
			envVars: map[string]string{"COMPARE_TIMEOUT": "soon"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()

			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := Load()

			if tt.wantErr {
				if err == nil {
					t.Errorf("Load() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("Load() unexpected error: %v", err)
				return
			}

			if tt.check != nil && !tt.check(cfg) {
				t.Errorf("Load() config check failed, got: %+v", cfg)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Port:         8000,
			UploadDir:    "temp_uploads",
			FaceProvider: "mock",
			FaceModel:    "SFace",

			RekognitionSimilarityThreshold: 80,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty model", func(c *Config) { c.FaceModel = "" }, true},
		{"empty upload dir", func(c *Config) { c.UploadDir = "" }, true},
		{"port too large", func(c *Config) { c.Port = 70000 }, true},
		{"negative concurrency", func(c *Config) { c.MaxConcurrentComparisons = -1 }, true},
		{"rekognition threshold above 100", func(c *Config) { c.RekognitionSimilarityThreshold = 101 }, true},
		{"rekognition threshold 0", func(c *Config) { c.RekognitionSimilarityThreshold = 0 }, true},
		{"rekognition threshold 100", func(c *Config) { c.RekognitionSimilarityThreshold = 100 }, true},
		{"rekognition threshold 99.5", func(c *Config) { c.RekognitionSimilarityThreshold = 99.5 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Addr(t *testing.T) {
	c := &Config{Host: "0.0.0.0", Port: 8000}
	if got := c.Addr(); got != "0.0.0.0:8000" {
		t.Errorf("Addr() = %q, want %q", got, "0.0.0.0:8000")
	}
}

func TestConfig_BodyLimit(t *testing.T) {
	c := &Config{BodyLimitMB: 2}
	if got := c.BodyLimit(); got != 2*1024*1024 {
		t.Errorf("BodyLimit() = %d, want %d", got, 2*1024*1024)
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want bool
	}{
		{"development", "development", true},
		{"production", "production", false},
		{"staging", "staging", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{Environment: tt.env}
			if got := c.IsDevelopment(); got != tt.want {
				t.Errorf("IsDevelopment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want bool
	}{
		{"production", "production", true},
		{"development", "development", false},
		{"staging", "staging", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{Environment: tt.env}
			if got := c.IsProduction(); got != tt.want {
				t.Errorf("IsProduction() = %v, want %v", got, tt.want)
			}
		})
	}
}
