package storage

import "testing"

func TestRewriteLoopbackHost(t *testing.T) {
	cases := []struct {
		name        string
		rawURL      string
		requestHost string
		want        string
	}{
		{
			name:        "rewrites 127.0.0.1",
			rawURL:      "http://127.0.0.1:8080/static/aircraft/a/1.jpg",
			requestHost: "skylist.example.com",
			want:        "http://skylist.example.com/static/aircraft/a/1.jpg",
		},
		{
			name:        "rewrites localhost",
			rawURL:      "http://localhost:9000/bucket/key.png",
			requestHost: "api.skylist.aero",
			want:        "http://api.skylist.aero/bucket/key.png",
		},
		{
			name:        "leaves public hosts alone",
			rawURL:      "https://cdn.skylist.aero/aircraft/a/1.jpg",
			requestHost: "skylist.example.com",
			want:        "https://cdn.skylist.aero/aircraft/a/1.jpg",
		},
		{
			name:        "no request host",
			rawURL:      "http://127.0.0.1:8080/static/x.jpg",
			requestHost: "",
			want:        "http://127.0.0.1:8080/static/x.jpg",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RewriteLoopbackHost(tc.rawURL, tc.requestHost); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}
