package app

import (
    "archive/tar"
    "compress/gzip"
    "crypto/sha256"
    "encoding/hex"
    "fmt"
    "io"
    "os"
    "path/filepath"
    "strings"
)

// archiveSampleDir makes one dataset's sample directory handable: it writes
// a SHA256SUMS file covering every pair in the directory, then packs the
// whole directory into <dir>.tar.gz next to it.
func archiveSampleDir(dir string) error {
    if err := writeSHA256SUMS(dir); err != nil {
        return fmt.Errorf("write checksums: %w", err)
    }
    tarPath := strings.TrimRight(dir, string(os.PathSeparator)) + ".tar.gz"
    if err := tarGzDirectory(dir, tarPath); err != nil {
        return fmt.Errorf("tar samples: %w", err)
    }
    return nil
}

// writeSHA256SUMS writes digest lines for every regular file in dir, in the
// conventional "<hex>  <name>" format, excluding any archives.
func writeSHA256SUMS(dir string) error {
    entries, err := os.ReadDir(dir)
    if err != nil { return err }
    var b strings.Builder
    for _, e := range entries {
        if e.IsDir() { continue }
        name := e.Name()
        if strings.HasSuffix(name, ".tar.gz") || name == "SHA256SUMS" { continue }
        p := filepath.Join(dir, name)
        sum, err := sha256File(p)
        if err != nil { return err }
        b.WriteString(sum)
        b.WriteString("  ")
        b.WriteString(name)
        b.WriteString("\n")
    }
    return os.WriteFile(filepath.Join(dir, "SHA256SUMS"), []byte(b.String()), 0o644)
}

func sha256File(path string) (string, error) {
    f, err := os.Open(path)
    if err != nil { return "", err }
    defer f.Close()
    h := sha256.New()
    if _, err := io.Copy(h, f); err != nil { return "", err }
    return hex.EncodeToString(h.Sum(nil)), nil
}

func tarGzDirectory(srcDir, outPath string) error {
    out, err := os.Create(outPath)
    if err != nil { return err }
    defer out.Close()
    gz := gzip.NewWriter(out)
    defer gz.Close()
    tw := tar.NewWriter(gz)
    defer tw.Close()

    base := filepath.Base(srcDir)
    return filepath.Walk(srcDir, func(path string, info os.FileInfo, err error) error {
        if err != nil { return err }
        if info.IsDir() { return nil }
        rel, err := filepath.Rel(filepath.Dir(srcDir), path)
        if err != nil { return err }
        // Ensure the files are nested under the base directory in the tar
        if !strings.HasPrefix(rel, base+string(os.PathSeparator)) {
            rel = filepath.Join(base, filepath.Base(path))
        }
        hdr, err := tar.FileInfoHeader(info, "")
        if err != nil { return err }
        hdr.Name = rel
        if err := tw.WriteHeader(hdr); err != nil { return err }
        f, err := os.Open(path)
        if err != nil { return err }
        if _, err := io.Copy(tw, f); err != nil {
            f.Close()
            return err
        }
        f.Close()
        return nil
    })
}
