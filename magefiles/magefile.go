//go:build mage

// Package main provides build targets for the addressbook project using Mage.
//
// Usage:
//
//	mage build          Compile addressbook binary to bin/
//	mage test:all       Run all tests
//	mage test:unit      Run only library package tests
//	mage test:cli       Run only the CLI tests
//	mage test:race      Run all tests with the race detector
//	mage test:cover     Run all tests with coverage
//	mage lint           Run golangci-lint
//	mage vet            Run go vet
//	mage clean          Remove build artifacts
//	mage install        Install addressbook to GOPATH/bin
//	mage stats          Print Go LOC per top-level directory and doc word counts
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
)

// Stats prints Go lines of code per top-level directory and documentation
// word counts.
func Stats() error {
	prod := map[string]int{}
	tests := map[string]int{}

	err := filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			switch path {
			case "vendor", ".git", binaryDir, "magefiles", "_examples":
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		count, countErr := countLines(path)
		if countErr != nil {
			return nil
		}
		top := strings.SplitN(filepath.ToSlash(path), "/", 2)[0]
		if strings.HasSuffix(path, "_test.go") {
			tests[top] += count
		} else {
			prod[top] += count
		}
		return nil
	})
	if err != nil {
		return err
	}

	dirs := make([]string, 0, len(prod))
	for dir := range prod {
		dirs = append(dirs, dir)
	}
	for dir := range tests {
		if _, ok := prod[dir]; !ok {
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)

	var prodTotal, testTotal int
	for _, dir := range dirs {
		fmt.Printf("%-10s production %6d  tests %6d\n", dir+"/", prod[dir], tests[dir])
		prodTotal += prod[dir]
		testTotal += tests[dir]
	}

	docWords, err := countDocWords()
	if err != nil {
		return err
	}
	fmt.Printf("Lines of code (Go, total):      %d\n", prodTotal+testTotal)
	fmt.Printf("Words (documentation):          %d\n", docWords)
	return nil
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		count++
	}
	return count, scanner.Err()
}

// countDocWords counts words in the Markdown files at the repository root.
func countDocWords() (int, error) {
	matches, err := filepath.Glob("*.md")
	if err != nil {
		return 0, err
	}
	total := 0
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		total += countWords(string(data))
	}
	return total, nil
}

func countWords(s string) int {
	count := 0
	inWord := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWord = false
		} else if !inWord {
			inWord = true
			count++
		}
	}
	return count
}
