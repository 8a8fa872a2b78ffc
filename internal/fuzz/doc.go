// Package fuzztests houses Go fuzz harnesses for the comment pipeline
// (source -> extract -> lexer -> parser). They guard against panics, hangs
// and broken trees on arbitrary input.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер/парсер,
// проверяя структурные инварианты дерева.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
