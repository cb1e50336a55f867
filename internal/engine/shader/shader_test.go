package shader

import "testing"

func TestInject(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		defines map[string]string
		want    string
	}{
		{
			name: "no defines",
			src:  "#version 410 core\nvoid main() {}\n",
			want: "#version 410 core\nvoid main() {}\n",
		},
		{
			name:    "after version",
			src:     "#version 410 core\nvoid main() {}\n",
			defines: map[string]string{"MIPS": "5", "FOG": "1"},
			want:    "#version 410 core\n#define FOG 1\n#define MIPS 5\nvoid main() {}\n",
		},
		{
			name:    "no version",
			src:     "void main() {}\n",
			defines: map[string]string{"A": "2"},
			want:    "#define A 2\nvoid main() {}\n",
		},
		{
			name:    "version only",
			src:     "#version 410 core",
			defines: map[string]string{"A": "2"},
			want:    "#version 410 core\n#define A 2\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Inject(tt.src, tt.defines); got != tt.want {
				t.Errorf("Inject() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanLog(t *testing.T) {
	log := append([]byte("0:12(3): error: syntax error\n"), 0, 0)
	if got, want := cleanLog(log), "0:12(3): error: syntax error"; got != want {
		t.Errorf("cleanLog() = %q, want %q", got, want)
	}
}
