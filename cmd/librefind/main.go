package main

import (
    "fmt"
    "os"
)

func main() {
    a := &app{out: os.Stdout}
    defer a.close()
    if err := newRootCmd(a).Execute(); err != nil {
        fmt.Fprintln(os.Stderr, err)
        a.close()
        os.Exit(1)
    }
}
