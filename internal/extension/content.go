package extension

import (
	"fmt"
	"strings"
	"time"

	consts "github.com/khanhnv2901/seca-pin/internal/shared/constants"
)

// entityButtonLabels pick the Irish entity on the region chooser.
var entityButtonLabels = []string{"go to ie website"}

// cookieRejectLabels dismiss cookie banners.
var cookieRejectLabels = []string{"reject all cookies", "reject cookies", "ablehnen"}

const contentScriptTemplate = `(() => {
  const action = () => {
    for (const el of document.querySelectorAll('button,a')) {
      const t = el.textContent.trim().toLowerCase();
      if ([%s].includes(t)){el.click();return;}
      if ([%s].includes(t)){el.click();return;}
    }
  };
  action();
  const o = new MutationObserver(action);
  o.observe(document.body,{childList:true,subtree:true});
  setTimeout(()=>o.disconnect(),%d);
})();
`

// ContentScript returns the script injected on matching pages.
func ContentScript() string {
	return fmt.Sprintf(contentScriptTemplate,
		jsStringList(entityButtonLabels),
		jsStringList(cookieRejectLabels),
		int64(consts.ExtensionObserverTimeout/time.Millisecond))
}

func jsStringList(values []string) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, "'"+strings.ReplaceAll(v, "'", `\'`)+"'")
	}
	return strings.Join(quoted, ",")
}
