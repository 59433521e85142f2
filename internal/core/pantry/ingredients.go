// Package pantry 處理使用者的食材庫存：數量解析、食譜食材切分與名稱比對。
package pantry

import "sort"

// commonIngredients 依食材搜尋頁面提供的勾選清單
var commonIngredients = []string{
	"all-purpose flour", "baking powder", "baking soda", "basil", "bay leaf",
	"beef", "bell pepper", "black pepper", "bread crumbs", "broccoli",
	"brown sugar", "butter", "carrot", "celery", "cheddar cheese", "chicken",
	"chicken broth", "chili powder", "cinnamon", "corn", "cumin", "egg",
	"garlic", "garlic powder", "green beans", "ground beef", "honey", "ketchup",
	"lemon juice", "mayonnaise", "milk", "mustard", "olive oil", "onion",
	"onion powder", "oregano", "paprika", "parsley", "pasta", "pork",
	"potato", "rice", "salt", "soy sauce", "sugar", "thyme", "tomato",
	"tomato paste", "tomato sauce", "vanilla extract", "vegetable oil", "vinegar",
	"water", "worcestershire sauce", "yeast",
}

var commonIndex = func() map[string]bool {
	idx := make(map[string]bool, len(commonIngredients))
	for _, name := range commonIngredients {
		idx[name] = true
	}
	return idx
}()

// CommonIngredients 回傳排序後的常用食材清單副本
func CommonIngredients() []string {
	out := make([]string, len(commonIngredients))
	copy(out, commonIngredients)
	sort.Strings(out)
	return out
}

// IsCommonIngredient 名稱需為小寫
func IsCommonIngredient(name string) bool {
	return commonIndex[name]
}

// Units 食材管理頁面的單位選項
var Units = []string{"cup", "tbsp", "tsp", "g", "kg", "ml", "l", "piece", "whole"}
