package model

import (
	"reflect"
	"testing"
)

func TestParseRefPath(t *testing.T) {
	tests := []struct {
		name    string
		refpath string
		want    RefSpec
		wantErr bool
	}{
		{
			name:    "bare head",
			refpath: "@head",
			want:    RefSpec{Base: "head"},
		},
		{
			name:    "head with sub",
			refpath: "@head/myfolder/myfile.txt",
			want:    RefSpec{Base: "head", Sub: "myfolder/myfile.txt"},
		},
		{
			name:    "parent and merge parent hops",
			refpath: "@head~^/myfolder/myfile.txt",
			want: RefSpec{
				Base: "head",
				Hops: []string{"parent", "merge_parent"},
				Sub:  "myfolder/myfile.txt",
			},
		},
		{
			name:    "two parent hops",
			refpath: "@head~~",
			want:    RefSpec{Base: "head", Hops: []string{"parent", "parent"}},
		},
		{
			name:    "stage with sub",
			refpath: "@stage/myfolder",
			want:    RefSpec{Base: "stage", Sub: "myfolder"},
		},
		{
			name:    "workspace",
			refpath: "@workspace",
			want:    RefSpec{Base: "workspace"},
		},
		{
			name:    "branch name",
			refpath: "@somebranch/myfolder",
			want:    RefSpec{Base: "somebranch", Sub: "myfolder"},
		},
		{
			name:    "plain path goes to the workspace",
			refpath: "myfolder/myfile.txt",
			want:    RefSpec{Base: "workspace", Sub: "myfolder/myfile.txt"},
		},
		{
			name:    "sub paths are cleaned",
			refpath: "@head/myfolder/../other//file",
			want:    RefSpec{Base: "head", Sub: "other/file"},
		},
		{
			name:    "branch takes no hops",
			refpath: "@somebranch~",
			wantErr: true,
		},
		{
			name:    "empty",
			refpath: "",
			wantErr: true,
		},
		{
			name:    "bare at sign",
			refpath: "@",
			wantErr: true,
		},
		{
			name:    "at sign with sub only",
			refpath: "@/myfolder",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRefPath(tt.refpath)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseRefPath() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err == nil && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseRefPath() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRefSpecTreeSpec(t *testing.T) {
	spec, err := ParseRefPath("@head~^")
	if err != nil {
		t.Fatalf("ParseRefPath() error = %v", err)
	}
	if got := spec.TreeSpec(); got != "head/parent/merge_parent" {
		t.Errorf("TreeSpec() = %q", got)
	}
	if !spec.IsTree() {
		t.Errorf("IsTree() = false, want true")
	}
	if got := spec.String(); got != "@head~^" {
		t.Errorf("String() = %q", got)
	}
}

func TestRefSpecRoundTrip(t *testing.T) {
	for _, refpath := range []string{
		"@head",
		"@head~~^",
		"@stage/a/b",
		"@somebranch/myfolder",
	} {
		spec, err := ParseRefPath(refpath)
		if err != nil {
			t.Fatalf("ParseRefPath(%q) error = %v", refpath, err)
		}
		if got := spec.String(); got != refpath {
			t.Errorf("String() = %q, want %q", got, refpath)
		}
	}
}
