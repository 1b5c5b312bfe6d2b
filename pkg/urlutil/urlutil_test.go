package urlutil

import "testing"

func TestJoinPath(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		segment string
		want    string
	}{
		{
			name:    "default backend base",
			baseURL: "http://localhost:3000/api",
			segment: "video",
			want:    "http://localhost:3000/api/video",
		},
		{
			name:    "trailing slash on base",
			baseURL: "http://localhost:3000/api/",
			segment: "video",
			want:    "http://localhost:3000/api/video",
		},
		{
			name:    "leading slash on segment",
			baseURL: "http://backend",
			segment: "/video",
			want:    "http://backend/video",
		},
		{
			name:    "preserves special characters in base",
			baseURL: "http://backend/api(v1)",
			segment: "video",
			want:    "http://backend/api(v1)/video",
		},
		{
			name:    "base with query string",
			baseURL: "http://backend/api?key=abc",
			segment: "video",
			want:    "http://backend/api/video?key=abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JoinPath(tt.baseURL, tt.segment)
			if got != tt.want {
				t.Errorf("JoinPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAddQueryParam(t *testing.T) {
	tests := []struct {
		name   string
		rawURL string
		key    string
		value  string
		want   string
	}{
		{
			name:   "no existing query",
			rawURL: "http://backend/api/video",
			key:    "id",
			value:  "dQw4w9WgXcQ",
			want:   "http://backend/api/video?id=dQw4w9WgXcQ",
		},
		{
			name:   "existing query",
			rawURL: "http://backend/api/video?key=abc",
			key:    "id",
			value:  "xyz",
			want:   "http://backend/api/video?key=abc&id=xyz",
		},
		{
			name:   "value is escaped",
			rawURL: "http://backend/api/video",
			key:    "id",
			value:  "a b&c=d",
			want:   "http://backend/api/video?id=a+b%26c%3Dd",
		},
		{
			name:   "dangling question mark",
			rawURL: "http://backend/api/video?",
			key:    "id",
			value:  "x",
			want:   "http://backend/api/video?id=x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddQueryParam(tt.rawURL, tt.key, tt.value)
			if got != tt.want {
				t.Errorf("AddQueryParam() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetSchemeHost(t *testing.T) {
	tests := []struct {
		name   string
		urlStr string
		want   string
	}{
		{
			name:   "https URL",
			urlStr: "https://raw.githubusercontent.com/siawaseok3/wakame/master/video_config.json",
			want:   "https://raw.githubusercontent.com",
		},
		{
			name:   "http URL with port",
			urlStr: "http://localhost:3000/api",
			want:   "http://localhost:3000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetSchemeHost(tt.urlStr)
			if got != tt.want {
				t.Errorf("GetSchemeHost() = %q, want %q", got, tt.want)
			}
		})
	}
}
