package render

import (
	"fmt"
	"strings"
)

const (
	treeLevelEmpty           = "        "
	treeLevelOngoing         = "  |     "
	treeLevelPrefix          = "  |%s: "
	treeLevelPrefixLast      = `  \%s: `
	treeLevelPrefixPadChar   = '-'
	treeLevelPrefixPadAmount = 3
)

func makeTreeLevelPrefix(msg string) string {
	for len([]rune(msg)) < treeLevelPrefixPadAmount {
		msg = string(treeLevelPrefixPadChar) + msg
	}
	return fmt.Sprintf(treeLevelPrefix, msg)
}

func makeTreeLevelPrefixLast(msg string) string {
	for len([]rune(msg)) < treeLevelPrefixPadAmount {
		msg = string(treeLevelPrefixPadChar) + msg
	}
	return fmt.Sprintf(treeLevelPrefixLast, msg)
}

// TreeNode is a labeled node with children, rendered by Tree for --debug
// output of scopes and evaluation-graph topological order.
type TreeNode struct {
	Label    string
	Children []TreeNode
}

// Tree renders n as an indented ASCII tree, one node per line, using the
// same branch-prefix scheme the teacher uses for parse trees.
func Tree(n TreeNode) string {
	return n.leveledStr("", "")
}

func (n TreeNode) leveledStr(firstPrefix, contPrefix string) string {
	var sb strings.Builder
	sb.WriteString(firstPrefix)
	sb.WriteString(n.Label)

	for i := range n.Children {
		sb.WriteRune('\n')
		var leveledFirstPrefix, leveledContPrefix string
		if i+1 < len(n.Children) {
			leveledFirstPrefix = contPrefix + makeTreeLevelPrefix("")
			leveledContPrefix = contPrefix + treeLevelOngoing
		} else {
			leveledFirstPrefix = contPrefix + makeTreeLevelPrefixLast("")
			leveledContPrefix = contPrefix + treeLevelEmpty
		}
		sb.WriteString(n.Children[i].leveledStr(leveledFirstPrefix, leveledContPrefix))
	}

	return sb.String()
}

// EvalOrderTree builds a TreeNode listing names in their resolved
// evaluation-graph topological order, for --debug CLI output (spec.md
// sec 4.9).
func EvalOrderTree(label string, order []string) TreeNode {
	root := TreeNode{Label: label}
	for i, name := range order {
		root.Children = append(root.Children, TreeNode{Label: fmt.Sprintf("%d: %s", i, name)})
	}
	return root
}
